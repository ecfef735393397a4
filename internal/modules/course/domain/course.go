package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "attend/internal/platform/errors"
)

const (
	MinTotalLectures = 1
	MaxTotalLectures = 10_000
	MinTargetPercent = 1
	MaxTargetPercent = 100
)

// Course is a tracked subject. Attended holds attendance events in the order
// they were recorded, which after edits is not necessarily chronological.
type Course struct {
	ID            string
	Name          string
	TotalLectures int
	TargetPercent int
	Attended      []time.Time
}

type Settings struct {
	DarkMode bool
}

// Root is the whole persisted state.
type Root struct {
	Courses  []Course
	Settings Settings
}

func DefaultRoot() Root {
	return Root{Courses: []Course{}, Settings: Settings{DarkMode: false}}
}

func (c Course) Clone() Course {
	out := c
	out.Attended = make([]time.Time, len(c.Attended))
	copy(out.Attended, c.Attended)
	return out
}

func (r Root) Clone() Root {
	out := Root{Courses: make([]Course, len(r.Courses)), Settings: r.Settings}
	for i, c := range r.Courses {
		out.Courses[i] = c.Clone()
	}
	return out
}

func (r Root) IndexOf(id string) int {
	for i, c := range r.Courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// ValidateFields checks the scalar fields shared by add and edit.
func ValidateFields(name string, totalLectures, targetPercent int) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.Invalid("name", "Course name is required")
	}
	if totalLectures < MinTotalLectures {
		return apperrors.Invalid("total_lectures", "Total lectures must be at least 1")
	}
	if totalLectures > MaxTotalLectures {
		return apperrors.Invalid("total_lectures", fmt.Sprintf("Total lectures must be at most %d", MaxTotalLectures))
	}
	if targetPercent < MinTargetPercent || targetPercent > MaxTargetPercent {
		return apperrors.Invalid("target_percent", "Target percentage must be between 1 and 100")
	}
	return nil
}

func ValidateAttendedCount(attendedCount, totalLectures int) error {
	if attendedCount < 0 || attendedCount > totalLectures {
		return apperrors.Invalid("attended", "Attended lectures must be between 0 and the total")
	}
	return nil
}

// Reconcile resizes events to count. Growing appends backfilled events one
// minute apart going backwards from now, so later positions are older.
// Shrinking keeps the first count events in insertion order.
func Reconcile(events []time.Time, count int, now time.Time) []time.Time {
	out := make([]time.Time, 0, max(count, 0))
	if count <= len(events) {
		return append(out, events[:max(count, 0)]...)
	}
	out = append(out, events...)
	for len(out) < count {
		out = append(out, now.Add(-time.Duration(len(out))*time.Minute))
	}
	return out
}
