package domain

import (
	"fmt"
	"math"
	"time"

	apperrors "attend/internal/platform/errors"
)

type Status int

const (
	StatusTargetMet Status = iota
	StatusAttendAll
	StatusSafeToSkip
)

func (s Status) String() string {
	switch s {
	case StatusTargetMet:
		return "target_met"
	case StatusAttendAll:
		return "attend_all"
	case StatusSafeToSkip:
		return "safe_to_skip"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Progress is the per-course recommendation snapshot.
type Progress struct {
	Attended  int
	Total     int
	Target    int
	Percent   float64
	Remaining int
	Needed    int
	SafeSkips int
	Status    Status
	Message   string
}

func CurrentPercent(c Course) (float64, error) {
	if c.TotalLectures <= 0 {
		return 0, fmt.Errorf("%w: course %q has %d total lectures", apperrors.ErrInvalidState, c.ID, c.TotalLectures)
	}
	return 100 * float64(len(c.Attended)) / float64(c.TotalLectures), nil
}

// Remaining is negative when more attendance was marked than lectures exist.
func Remaining(c Course) int {
	return c.TotalLectures - len(c.Attended)
}

// NeededToReachTarget is ceil(total*target/100 - attended), computed on
// integers. Stored records are not range checked, so the product is split on
// total's hundreds and saturates instead of wrapping.
func NeededToReachTarget(c Course) int {
	q, r := c.TotalLectures/100, c.TotalLectures%100
	rest := satAdd(satMul(r, c.TargetPercent), satMul(-100, len(c.Attended)))
	return satAdd(satMul(q, c.TargetPercent), ceilDiv(rest, 100))
}

func SafeSkips(c Course) int {
	return max(0, Remaining(c)-NeededToReachTarget(c))
}

func Classify(c Course) Status {
	needed := NeededToReachTarget(c)
	switch {
	case needed <= 0:
		return StatusTargetMet
	case needed > Remaining(c):
		return StatusAttendAll
	default:
		return StatusSafeToSkip
	}
}

func StatusMessage(status Status, safeSkips int) string {
	switch status {
	case StatusTargetMet:
		return "You've met your target!"
	case StatusAttendAll:
		return "Attend all remaining lectures!"
	default:
		return fmt.Sprintf("Safe to skip: %d lectures", safeSkips)
	}
}

func ComputeProgress(c Course) (Progress, error) {
	percent, err := CurrentPercent(c)
	if err != nil {
		return Progress{}, err
	}
	status := Classify(c)
	skips := SafeSkips(c)
	return Progress{
		Attended:  len(c.Attended),
		Total:     c.TotalLectures,
		Target:    c.TargetPercent,
		Percent:   percent,
		Remaining: Remaining(c),
		Needed:    NeededToReachTarget(c),
		SafeSkips: skips,
		Status:    status,
		Message:   StatusMessage(status, skips),
	}, nil
}

// LastMarked is the most recently recorded event, by insertion order.
func LastMarked(c Course) (time.Time, bool) {
	if len(c.Attended) == 0 {
		return time.Time{}, false
	}
	return c.Attended[len(c.Attended)-1], true
}

func OnTrack(c Course) bool {
	percent, err := CurrentPercent(c)
	if err != nil {
		return false
	}
	return percent >= float64(c.TargetPercent)
}

type Overview struct {
	Total   int
	OnTrack int
}

func Summarize(courses []Course) Overview {
	out := Overview{Total: len(courses)}
	for _, c := range courses {
		if OnTrack(c) {
			out.OnTrack++
		}
	}
	return out
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}

func satMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/b == a && !(a == -1 && b == math.MinInt) && !(b == -1 && a == math.MinInt) {
		return p
	}
	if (a > 0) == (b > 0) {
		return math.MaxInt
	}
	return math.MinInt
}

func satAdd(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
