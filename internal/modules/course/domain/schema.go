package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "attend/internal/platform/errors"
)

// StateKey is the key the root blob lives under in every state store.
const StateKey = "attendanceData"

// TimestampLayout matches the ISO-8601 form the stored data has always used.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Shape identifies which generation of the attended field a record was written with.
type Shape int

const (
	// ShapeEvents is the current format: an array of timestamps.
	ShapeEvents Shape = iota
	// ShapeCount is the legacy format: a bare attendance counter.
	ShapeCount
)

func (s Shape) String() string {
	switch s {
	case ShapeEvents:
		return "events"
	case ShapeCount:
		return "count"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// RawEvent is one serialized attendance event: an ISO string or epoch millis.
type RawEvent struct {
	Text    string
	Millis  int64
	Numeric bool
}

func (e *RawEvent) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		e.Numeric = false
		return json.Unmarshal(b, &e.Text)
	}
	if bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("attendance event is null")
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("attendance event must be a string or number: %w", err)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("attendance event is not finite")
	}
	if math.Abs(n) > maxEpochMillis {
		return fmt.Errorf("attendance event %v is outside the representable date range", n)
	}
	e.Numeric = true
	e.Millis = int64(n)
	return nil
}

// maxEpochMillis is the largest epoch offset a stored date may carry (±100M days).
const maxEpochMillis = 8.64e15

// Time resolves the event. Instants outside years 0000-9999 are rejected
// because TimestampLayout cannot write them back in a parseable form.
func (e RawEvent) Time() (time.Time, error) {
	t, err := e.parse()
	if err != nil {
		return time.Time{}, err
	}
	if y := t.Year(); y < 0 || y > 9999 {
		return time.Time{}, fmt.Errorf("timestamp %s is outside years 0000-9999", t.Format(time.RFC3339))
	}
	return t, nil
}

func (e RawEvent) parse() (time.Time, error) {
	if e.Numeric {
		return time.UnixMilli(e.Millis).UTC(), nil
	}
	s := strings.TrimSpace(e.Text)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	// Date-only values are UTC midnight; zoneless date-times are local.
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.Local); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", e.Text)
}

// AttendedField is the decoded attended value, tagged with its shape.
type AttendedField struct {
	Shape  Shape
	Count  float64
	Events []RawEvent
}

func (a *AttendedField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = AttendedField{Shape: ShapeEvents}
		return nil
	case len(b) > 0 && b[0] == '[':
		events := []RawEvent{}
		if err := json.Unmarshal(b, &events); err != nil {
			return err
		}
		*a = AttendedField{Shape: ShapeEvents, Events: events}
		return nil
	default:
		var n float64
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("attended must be an array or a number: %w", err)
		}
		*a = AttendedField{Shape: ShapeCount, Count: n}
		return nil
	}
}

type RawCourse struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	TotalLectures int           `json:"totalLectures"`
	TargetPercent int           `json:"targetPercent"`
	Attended      AttendedField `json:"attended"`
}

type RawSettings struct {
	DarkMode *bool `json:"darkMode"`
}

type RawRoot struct {
	Courses  []RawCourse  `json:"courses"`
	Settings *RawSettings `json:"settings"`
}

// Decode parses a stored blob and migrates every record to the current shape.
func Decode(raw []byte) (Root, error) {
	decoded := RawRoot{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Root{}, err
	}
	root := DefaultRoot()
	if decoded.Settings != nil && decoded.Settings.DarkMode != nil {
		root.Settings.DarkMode = *decoded.Settings.DarkMode
	}
	seen := make(map[string]struct{}, len(decoded.Courses))
	for i, rc := range decoded.Courses {
		if rc.ID == "" {
			return Root{}, fmt.Errorf("course %d has no id", i)
		}
		if _, dup := seen[rc.ID]; dup {
			return Root{}, fmt.Errorf("duplicate course id %q", rc.ID)
		}
		seen[rc.ID] = struct{}{}
		events, err := migrateAttended(rc.Attended)
		if err != nil {
			return Root{}, fmt.Errorf("course %q: %w", rc.ID, err)
		}
		root.Courses = append(root.Courses, Course{
			ID:            rc.ID,
			Name:          rc.Name,
			TotalLectures: rc.TotalLectures,
			TargetPercent: rc.TargetPercent,
			Attended:      events,
		})
	}
	return root, nil
}

func migrateAttended(field AttendedField) ([]time.Time, error) {
	switch field.Shape {
	case ShapeCount:
		// The legacy counter carries no history; it is dropped, not synthesized.
		return []time.Time{}, nil
	case ShapeEvents:
		events := make([]time.Time, 0, len(field.Events))
		for _, e := range field.Events {
			t, err := e.Time()
			if err != nil {
				return nil, err
			}
			events = append(events, t)
		}
		return events, nil
	default:
		return nil, fmt.Errorf("unknown attended shape %s", field.Shape)
	}
}

// Normalize always yields a usable root. Absent input is the default root;
// malformed input is the default root plus an ErrMalformedState error for the
// caller to report.
func Normalize(raw []byte) (Root, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return DefaultRoot(), nil
	}
	root, err := Decode(raw)
	if err != nil {
		return DefaultRoot(), fmt.Errorf("%w: %v", apperrors.ErrMalformedState, err)
	}
	return root, nil
}

type storedCourse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	TotalLectures int      `json:"totalLectures"`
	TargetPercent int      `json:"targetPercent"`
	Attended      []string `json:"attended"`
}

type storedSettings struct {
	DarkMode bool `json:"darkMode"`
}

type storedRoot struct {
	Courses  []storedCourse `json:"courses"`
	Settings storedSettings `json:"settings"`
}

// Serialize renders root in the current stored shape.
func Serialize(root Root) ([]byte, error) {
	out := storedRoot{Courses: make([]storedCourse, 0, len(root.Courses)), Settings: storedSettings{DarkMode: root.Settings.DarkMode}}
	for _, c := range root.Courses {
		attended := make([]string, 0, len(c.Attended))
		for _, t := range c.Attended {
			attended = append(attended, FormatTimestamp(t))
		}
		out.Courses = append(out.Courses, storedCourse{
			ID:            c.ID,
			Name:          c.Name,
			TotalLectures: c.TotalLectures,
			TargetPercent: c.TargetPercent,
			Attended:      attended,
		})
	}
	buf := bytes.Buffer{}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
