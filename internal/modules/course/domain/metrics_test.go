package domain_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attend/internal/modules/course/domain"
	apperrors "attend/internal/platform/errors"
)

func courseWith(total, target, attended int) domain.Course {
	events := make([]time.Time, attended)
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	for i := range events {
		events[i] = base.AddDate(0, 0, i)
	}
	return domain.Course{ID: "c", Name: "Course", TotalLectures: total, TargetPercent: target, Attended: events}
}

func TestProgressFreshCourse(t *testing.T) {
	t.Parallel()
	p, err := domain.ComputeProgress(courseWith(40, 75, 0))
	require.NoError(t, err)
	assert.Equal(t, 30, p.Needed)
	assert.Equal(t, 40, p.Remaining)
	assert.Equal(t, 10, p.SafeSkips)
	assert.Equal(t, domain.StatusSafeToSkip, p.Status)
	assert.Equal(t, "Safe to skip: 10 lectures", p.Message)
	assert.Equal(t, 0.0, p.Percent)
}

func TestProgressNearTarget(t *testing.T) {
	t.Parallel()
	p, err := domain.ComputeProgress(courseWith(10, 90, 8))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Needed)
	assert.Equal(t, 2, p.Remaining)
	assert.Equal(t, 1, p.SafeSkips)
	assert.Equal(t, domain.StatusSafeToSkip, p.Status)
	assert.InDelta(t, 80.0, p.Percent, 1e-9)
}

func TestProgressBoundaryNeededEqualsRemaining(t *testing.T) {
	t.Parallel()
	c := courseWith(10, 95, 2)
	assert.Equal(t, 8, domain.NeededToReachTarget(c))
	assert.Equal(t, 8, domain.Remaining(c))
	assert.Equal(t, 0, domain.SafeSkips(c))
	assert.Equal(t, domain.StatusSafeToSkip, domain.Classify(c))
	assert.Equal(t, "Safe to skip: 0 lectures", domain.StatusMessage(domain.Classify(c), 0))
}

func TestProgressAttendAllWhenNeededExceedsRemaining(t *testing.T) {
	t.Parallel()
	// Validated targets never exceed 100%, so needed > remaining only happens for
	// records loaded with a target above 100.
	c := courseWith(10, 120, 2)
	assert.Equal(t, 10, domain.NeededToReachTarget(c))
	assert.Equal(t, 8, domain.Remaining(c))
	p, err := domain.ComputeProgress(c)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAttendAll, p.Status)
	assert.Equal(t, 0, p.SafeSkips)
	assert.Equal(t, "Attend all remaining lectures!", p.Message)

	full := courseWith(10, 100, 0)
	assert.Equal(t, domain.StatusSafeToSkip, domain.Classify(full))
	assert.Equal(t, 0, domain.SafeSkips(full))
}

func TestProgressTargetMet(t *testing.T) {
	t.Parallel()
	p, err := domain.ComputeProgress(courseWith(10, 50, 5))
	require.NoError(t, err)
	assert.Equal(t, 0, p.Needed)
	assert.Equal(t, domain.StatusTargetMet, p.Status)
	assert.Equal(t, "You've met your target!", p.Message)
	assert.True(t, domain.OnTrack(courseWith(10, 50, 5)))
}

func TestOverflowedCourseKeepsNegativeRemaining(t *testing.T) {
	t.Parallel()
	c := courseWith(3, 75, 5)
	assert.Equal(t, -2, domain.Remaining(c))
	assert.Equal(t, 0, domain.SafeSkips(c))
	assert.Equal(t, domain.StatusTargetMet, domain.Classify(c))
}

func TestCurrentPercentRejectsZeroTotal(t *testing.T) {
	t.Parallel()
	_, err := domain.CurrentPercent(domain.Course{ID: "z"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	_, err = domain.ComputeProgress(domain.Course{ID: "z"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	assert.False(t, domain.OnTrack(domain.Course{ID: "z"}))
}

func TestNeededUsesExactArithmetic(t *testing.T) {
	t.Parallel()
	// 100 * 0.07 is 7.000000000000001 in floating point.
	assert.Equal(t, 7, domain.NeededToReachTarget(courseWith(100, 7, 0)))
	assert.Equal(t, -3, domain.NeededToReachTarget(courseWith(10, 50, 8)))
}

func TestNeededSaturatesOnHugeStoredValues(t *testing.T) {
	t.Parallel()
	huge := domain.Course{ID: "big", TotalLectures: math.MaxInt64 / 50, TargetPercent: 100}
	p, err := domain.ComputeProgress(huge)
	require.NoError(t, err)
	assert.Equal(t, huge.TotalLectures, p.Needed)
	assert.Equal(t, domain.StatusSafeToSkip, p.Status)
	assert.Equal(t, 0, p.SafeSkips)

	wild := domain.Course{ID: "wild", TotalLectures: 1000, TargetPercent: math.MaxInt}
	assert.Equal(t, math.MaxInt, domain.NeededToReachTarget(wild))
	assert.Equal(t, domain.StatusAttendAll, domain.Classify(wild))
}

func TestLastMarkedUsesInsertionOrder(t *testing.T) {
	t.Parallel()
	_, ok := domain.LastMarked(domain.Course{})
	assert.False(t, ok)

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 1, 0)
	last, ok := domain.LastMarked(domain.Course{Attended: []time.Time{newer, older}})
	require.True(t, ok)
	assert.Equal(t, older, last)
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	o := domain.Summarize([]domain.Course{courseWith(10, 50, 5), courseWith(10, 50, 4), courseWith(10, 10, 1)})
	assert.Equal(t, domain.Overview{Total: 3, OnTrack: 2}, o)
}
