package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	courseout "attend/internal/modules/course/adapter/out"
	"attend/internal/modules/course/domain"
	"attend/internal/modules/course/service"
	apperrors "attend/internal/platform/errors"
	"attend/internal/platform/id"
	"attend/internal/platform/logger"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("course-%d", s.n)
}

type repeatID struct{}

func (repeatID) New() string { return "same" }

func newService(t *testing.T, store *courseout.MemoryStateStore, policy service.Policy) (*service.CourseService, *fixedClock, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	clk := &fixedClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := service.NewCourseService(clk, &seqID{}, store, logger.FromZap(zap.New(core)), policy)
	svc.Load(context.Background())
	return svc, clk, logs
}

func TestAddCoursePersistsSnapshot(t *testing.T) {
	t.Parallel()
	store := courseout.NewMemoryStateStore(nil)
	svc, _, _ := newService(t, store, service.Policy{})

	course, err := svc.AddCourse(context.Background(), "  Linear Algebra ", 40, 75)
	if err != nil {
		t.Fatalf("add course: %v", err)
	}
	if course.ID != "course-1" || course.Name != "Linear Algebra" || len(course.Attended) != 0 {
		t.Fatalf("unexpected course %+v", course)
	}
	if store.Writes != 1 {
		t.Fatalf("expected one snapshot write, got %d", store.Writes)
	}
	root, err := domain.Normalize(store.Payload())
	if err != nil {
		t.Fatalf("stored payload must normalize: %v", err)
	}
	if len(root.Courses) != 1 || root.Courses[0].ID != "course-1" {
		t.Fatalf("unexpected stored root %+v", root)
	}
}

func TestAddCourseValidationDoesNotMutate(t *testing.T) {
	t.Parallel()
	store := courseout.NewMemoryStateStore(nil)
	svc, _, _ := newService(t, store, service.Policy{})

	for _, tc := range []struct {
		name          string
		total, target int
	}{{"", 10, 75}, {"A", 0, 75}, {"A", 10, 0}, {"A", 10, 101}} {
		if _, err := svc.AddCourse(context.Background(), tc.name, tc.total, tc.target); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected validation error for %+v, got %v", tc, err)
		}
	}
	if len(svc.ListCourses()) != 0 || store.Writes != 0 {
		t.Fatalf("validation failures must not mutate or persist")
	}
}

func TestAddCourseMintsUniqueIDsWithRealGenerator(t *testing.T) {
	t.Parallel()
	svc := service.NewCourseService(&fixedClock{now: time.Now()}, id.TimeOrdered{}, courseout.NewMemoryStateStore(nil), nil, service.Policy{})
	seen := make(map[string]bool, 10_000)
	// Each course is removed right away so every add serializes a small root.
	for i := 0; i < 10_000; i++ {
		c, err := svc.AddCourse(context.Background(), "c", 1, 1)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if seen[c.ID] {
			t.Fatalf("duplicate id %s after %d adds", c.ID, i)
		}
		seen[c.ID] = true
		svc.RemoveCourse(context.Background(), c.ID)
	}
	if len(seen) != 10_000 || len(svc.ListCourses()) != 0 {
		t.Fatalf("expected 10000 distinct ids and an empty collection, got %d ids and %d courses", len(seen), len(svc.ListCourses()))
	}
}

func TestAddCourseRetriesCollidingIDs(t *testing.T) {
	t.Parallel()
	svc := service.NewCourseService(&fixedClock{now: time.Now()}, repeatID{}, courseout.NewMemoryStateStore(nil), nil, service.Policy{})
	a, _ := svc.AddCourse(context.Background(), "a", 1, 1)
	b, _ := svc.AddCourse(context.Background(), "b", 1, 1)
	c, _ := svc.AddCourse(context.Background(), "c", 1, 1)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Fatalf("ids must stay unique: %s %s %s", a.ID, b.ID, c.ID)
	}
}

func TestRemoveCourseIsNoOpWhenAbsent(t *testing.T) {
	t.Parallel()
	store := courseout.NewMemoryStateStore(nil)
	svc, _, _ := newService(t, store, service.Policy{})
	a, _ := svc.AddCourse(context.Background(), "A", 10, 75)
	b, _ := svc.AddCourse(context.Background(), "B", 10, 75)

	svc.RemoveCourse(context.Background(), "missing")
	if len(svc.ListCourses()) != 2 {
		t.Fatalf("removing an unknown id must not change the collection")
	}
	svc.RemoveCourse(context.Background(), a.ID)
	courses := svc.ListCourses()
	if len(courses) != 1 || courses[0].ID != b.ID {
		t.Fatalf("unexpected courses after remove %+v", courses)
	}
	if _, err := svc.FindCourse(a.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEditShrinkKeepsInsertionOrderPrefix(t *testing.T) {
	t.Parallel()
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	events := []time.Time{base.AddDate(0, 0, 3), base, base.AddDate(0, 0, 4), base.AddDate(0, 0, 1), base.AddDate(0, 0, 2)}
	seed, err := domain.Serialize(domain.Root{Courses: []domain.Course{{ID: "c", Name: "C", TotalLectures: 10, TargetPercent: 75, Attended: events}}})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc, _, _ := newService(t, courseout.NewMemoryStateStore(seed), service.Policy{})

	edited, err := svc.EditCourse(context.Background(), "c", "C2", 10, 80, 2)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(edited.Attended) != 2 || !edited.Attended[0].Equal(events[0]) || !edited.Attended[1].Equal(events[1]) {
		t.Fatalf("expected first two events in insertion order, got %v", edited.Attended)
	}
	if edited.Name != "C2" || edited.TargetPercent != 80 {
		t.Fatalf("scalar fields not updated: %+v", edited)
	}
}

func TestEditGrowBackfillsFromNow(t *testing.T) {
	t.Parallel()
	svc, clk, _ := newService(t, courseout.NewMemoryStateStore(nil), service.Policy{})
	c, _ := svc.AddCourse(context.Background(), "C", 10, 75)
	if _, err := svc.MarkAttendance(context.Background(), c.ID); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if _, err := svc.MarkAttendance(context.Background(), c.ID); err != nil {
		t.Fatalf("mark: %v", err)
	}

	edited, err := svc.EditCourse(context.Background(), c.ID, "C", 10, 75, 5)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(edited.Attended) != 5 {
		t.Fatalf("expected 5 events, got %d", len(edited.Attended))
	}
	for i := 3; i < 5; i++ {
		if !edited.Attended[i].Before(edited.Attended[i-1]) {
			t.Fatalf("synthetic events must decrease: %v", edited.Attended)
		}
	}
	if !edited.Attended[2].Equal(clk.now.Add(-2 * time.Minute)) {
		t.Fatalf("first synthetic event should be now-2m, got %v", edited.Attended[2])
	}
}

func TestEditValidation(t *testing.T) {
	t.Parallel()
	store := courseout.NewMemoryStateStore(nil)
	svc, _, _ := newService(t, store, service.Policy{})
	c, _ := svc.AddCourse(context.Background(), "C", 10, 75)
	writes := store.Writes

	if _, err := svc.EditCourse(context.Background(), c.ID, "C", 10, 75, 11); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("attended above total must fail, got %v", err)
	}
	if _, err := svc.EditCourse(context.Background(), c.ID, "C", 10, 75, -1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("negative attended must fail, got %v", err)
	}
	if _, err := svc.EditCourse(context.Background(), "missing", "C", 10, 75, 1); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.Writes != writes {
		t.Fatalf("failed edits must not persist")
	}
}

func TestMarkAttendanceOverflowsByDefault(t *testing.T) {
	t.Parallel()
	svc, clk, _ := newService(t, courseout.NewMemoryStateStore(nil), service.Policy{})
	c, _ := svc.AddCourse(context.Background(), "C", 1, 100)

	first, err := svc.MarkAttendance(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if !first.TargetReached || !first.MarkedAt.Equal(clk.now) {
		t.Fatalf("unexpected mark result %+v", first)
	}
	second, err := svc.MarkAttendance(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("uncapped mark must succeed: %v", err)
	}
	if len(second.Course.Attended) != 2 {
		t.Fatalf("expected overflowed history, got %d", len(second.Course.Attended))
	}
}

func TestMarkAttendanceCapPolicy(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t, courseout.NewMemoryStateStore(nil), service.Policy{CapMarkAtTotal: true})
	c, _ := svc.AddCourse(context.Background(), "C", 1, 100)
	if _, err := svc.MarkAttendance(context.Background(), c.ID); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if _, err := svc.MarkAttendance(context.Background(), c.ID); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected capped mark to fail, got %v", err)
	}
	found, _ := svc.FindCourse(c.ID)
	if len(found.Attended) != 1 {
		t.Fatalf("capped mark must not append")
	}
}

func TestMarkAndResetUnknownCourse(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t, courseout.NewMemoryStateStore(nil), service.Policy{})
	if _, err := svc.MarkAttendance(context.Background(), "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.ResetAttendance(context.Background(), "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResetAttendanceClearsEvents(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t, courseout.NewMemoryStateStore(nil), service.Policy{})
	c, _ := svc.AddCourse(context.Background(), "C", 10, 75)
	_, _ = svc.MarkAttendance(context.Background(), c.ID)

	reset, err := svc.ResetAttendance(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(reset.Attended) != 0 {
		t.Fatalf("expected empty attendance, got %d", len(reset.Attended))
	}
}

func TestReturnedCoursesAreCopies(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t, courseout.NewMemoryStateStore(nil), service.Policy{})
	c, _ := svc.AddCourse(context.Background(), "C", 10, 75)
	res, _ := svc.MarkAttendance(context.Background(), c.ID)
	res.Course.Attended[0] = time.Time{}
	res.Course.Name = "mutated"

	found, _ := svc.FindCourse(c.ID)
	if found.Name != "C" || found.Attended[0].IsZero() {
		t.Fatalf("repository state leaked through a returned value")
	}
}

func TestToggleDarkModePersists(t *testing.T) {
	t.Parallel()
	store := courseout.NewMemoryStateStore(nil)
	svc, _, _ := newService(t, store, service.Policy{})
	if svc.Settings().DarkMode {
		t.Fatalf("dark mode defaults to off")
	}
	if !svc.ToggleDarkMode(context.Background()).DarkMode {
		t.Fatalf("toggle must enable dark mode")
	}
	if !strings.Contains(string(store.Payload()), `"darkMode":true`) {
		t.Fatalf("dark mode not persisted: %s", store.Payload())
	}
}

func TestWriteFailureIsLoggedAndStateKept(t *testing.T) {
	t.Parallel()
	store := courseout.NewMemoryStateStore(nil)
	store.WriteErr = errors.New("quota exceeded")
	svc, _, logs := newService(t, store, service.Policy{})

	c, err := svc.AddCourse(context.Background(), "C", 10, 75)
	if err != nil {
		t.Fatalf("write failures must not surface: %v", err)
	}
	if _, err := svc.FindCourse(c.ID); err != nil {
		t.Fatalf("in-memory state must keep the course: %v", err)
	}
	if logs.FilterMessage("persist attendance state").Len() != 1 {
		t.Fatalf("expected persistence failure to be logged, got %v", logs.All())
	}
}

func TestLoadMigratesLegacyAndRecoversFromMalformed(t *testing.T) {
	t.Parallel()
	legacy := courseout.NewMemoryStateStore([]byte(`{"courses":[{"id":"old","name":"Old","totalLectures":20,"targetPercent":75,"attended":7}],"settings":{"darkMode":true}}`))
	svc, _, _ := newService(t, legacy, service.Policy{})
	c, err := svc.FindCourse("old")
	if err != nil {
		t.Fatalf("legacy course missing: %v", err)
	}
	if len(c.Attended) != 0 || !svc.Settings().DarkMode {
		t.Fatalf("unexpected migration result %+v", c)
	}

	broken := courseout.NewMemoryStateStore([]byte(`{"courses": 12`))
	svc, _, logs := newService(t, broken, service.Policy{})
	if len(svc.ListCourses()) != 0 {
		t.Fatalf("malformed state must fall back to empty")
	}
	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		t.Fatalf("malformed state must be logged")
	}

	unreadable := courseout.NewMemoryStateStore(nil)
	unreadable.ReadErr = errors.New("locked")
	svc, _, logs = newService(t, unreadable, service.Policy{})
	if len(svc.ListCourses()) != 0 || logs.FilterMessage("read attendance state").Len() != 1 {
		t.Fatalf("read failure must log and start empty")
	}
}
