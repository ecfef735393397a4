package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attend/internal/modules/course/domain"
	apperrors "attend/internal/platform/errors"
)

func TestValidateFields(t *testing.T) {
	t.Parallel()
	require.NoError(t, domain.ValidateFields("Math", 1, 100))
	require.NoError(t, domain.ValidateFields("Math", domain.MaxTotalLectures, 100))

	for _, tc := range []struct {
		name          string
		total, target int
		field         string
	}{
		{"   ", 10, 75, "name"},
		{"Math", 0, 75, "total_lectures"},
		{"Math", domain.MaxTotalLectures + 1, 75, "total_lectures"},
		{"Math", 1 << 60, 75, "total_lectures"},
		{"Math", 10, 0, "target_percent"},
		{"Math", 10, 101, "target_percent"},
	} {
		err := domain.ValidateFields(tc.name, tc.total, tc.target)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
		var verr *apperrors.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, tc.field, verr.Field)
	}
}

func TestValidateAttendedCount(t *testing.T) {
	t.Parallel()
	assert.NoError(t, domain.ValidateAttendedCount(0, 5))
	assert.NoError(t, domain.ValidateAttendedCount(5, 5))
	assert.Error(t, domain.ValidateAttendedCount(-1, 5))
	assert.Error(t, domain.ValidateAttendedCount(6, 5))
}

func TestReconcileShrinkKeepsInsertionOrderPrefix(t *testing.T) {
	t.Parallel()
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	events := []time.Time{base.AddDate(0, 0, 4), base, base.AddDate(0, 0, 2), base.AddDate(0, 0, 1), base.AddDate(0, 0, 3)}

	got := domain.Reconcile(events, 2, base)
	assert.Equal(t, events[:2], got)
}

func TestReconcileGrowBackfillsDecreasingTimestamps(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []time.Time{now.AddDate(0, 0, -3), now.AddDate(0, 0, -2)}

	got := domain.Reconcile(events, 5, now)
	require.Len(t, got, 5)
	assert.Equal(t, events, got[:2])
	for i := 3; i < 5; i++ {
		assert.True(t, got[i].Before(got[i-1]), "event %d must be older than %d", i, i-1)
	}
	assert.Equal(t, now.Add(-2*time.Minute), got[2])
	assert.Equal(t, now.Add(-4*time.Minute), got[4])
}

func TestCloneDoesNotAlias(t *testing.T) {
	t.Parallel()
	c := domain.Course{ID: "a", Attended: []time.Time{time.Unix(0, 0)}}
	cp := c.Clone()
	cp.Attended[0] = time.Unix(10, 0)
	assert.Equal(t, time.Unix(0, 0), c.Attended[0])
}
