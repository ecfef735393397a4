package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"attend/internal/modules/course/domain"
	courseout "attend/internal/modules/course/port/out"
	"attend/internal/platform/clock"
	apperrors "attend/internal/platform/errors"
	"attend/internal/platform/id"
	"attend/internal/platform/logger"
)

// Policy holds the behaviour switches that are left to configuration.
type Policy struct {
	// CapMarkAtTotal rejects marks that would exceed the course's total lectures.
	CapMarkAtTotal bool
}

type MarkResult struct {
	Course        domain.Course
	MarkedAt      time.Time
	TargetReached bool
}

// CourseService owns the in-memory root and writes a full snapshot to the
// state store after every mutation. Write failures are logged, not returned.
type CourseService struct {
	mu     sync.Mutex
	clock  clock.Clock
	idGen  id.Generator
	store  courseout.StateStore
	log    *logger.Logger
	policy Policy
	root   domain.Root
}

func NewCourseService(clock clock.Clock, idGen id.Generator, store courseout.StateStore, log *logger.Logger, policy Policy) *CourseService {
	if log == nil {
		log = logger.Nop()
	}
	return &CourseService{clock: clock, idGen: idGen, store: store, log: log, policy: policy, root: domain.DefaultRoot()}
}

// Load replaces the in-memory root with the stored one. It never fails: read
// errors and malformed state fall back to an empty root.
func (s *CourseService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, found, err := s.store.Read(ctx)
	if err != nil {
		s.log.Error("read attendance state", "error", err)
		s.root = domain.DefaultRoot()
		return
	}
	if !found {
		s.root = domain.DefaultRoot()
		return
	}
	root, err := domain.Normalize(payload)
	if err != nil {
		s.log.Warn("stored attendance state is malformed, starting empty", "error", err)
	}
	s.root = root
	s.log.Debug("attendance state loaded", "courses", len(root.Courses))
}

func (s *CourseService) AddCourse(ctx context.Context, name string, totalLectures, targetPercent int) (domain.Course, error) {
	if err := domain.ValidateFields(name, totalLectures, targetPercent); err != nil {
		return domain.Course{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	courseID := s.mintID()
	course := domain.Course{
		ID:            courseID,
		Name:          strings.TrimSpace(name),
		TotalLectures: totalLectures,
		TargetPercent: targetPercent,
		Attended:      []time.Time{},
	}
	s.root.Courses = append(s.root.Courses, course)
	s.persist(ctx, "add_course")
	return course.Clone(), nil
}

func (s *CourseService) RemoveCourse(ctx context.Context, courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.root.IndexOf(courseID); idx >= 0 {
		s.root.Courses = append(s.root.Courses[:idx], s.root.Courses[idx+1:]...)
	}
	s.persist(ctx, "remove_course")
}

func (s *CourseService) FindCourse(courseID string) (domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.root.IndexOf(courseID)
	if idx < 0 {
		return domain.Course{}, notFound(courseID)
	}
	return s.root.Courses[idx].Clone(), nil
}

func (s *CourseService) ListCourses() []domain.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.Clone().Courses
}

func (s *CourseService) EditCourse(ctx context.Context, courseID, name string, totalLectures, targetPercent, attendedCount int) (domain.Course, error) {
	if err := domain.ValidateFields(name, totalLectures, targetPercent); err != nil {
		return domain.Course{}, err
	}
	if err := domain.ValidateAttendedCount(attendedCount, totalLectures); err != nil {
		return domain.Course{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.root.IndexOf(courseID)
	if idx < 0 {
		return domain.Course{}, notFound(courseID)
	}
	course := &s.root.Courses[idx]
	course.Name = strings.TrimSpace(name)
	course.TotalLectures = totalLectures
	course.TargetPercent = targetPercent
	course.Attended = domain.Reconcile(course.Attended, attendedCount, s.clock.Now())
	s.persist(ctx, "edit_course")
	return course.Clone(), nil
}

func (s *CourseService) MarkAttendance(ctx context.Context, courseID string) (MarkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.root.IndexOf(courseID)
	if idx < 0 {
		return MarkResult{}, notFound(courseID)
	}
	course := &s.root.Courses[idx]
	if s.policy.CapMarkAtTotal && len(course.Attended) >= course.TotalLectures {
		return MarkResult{}, apperrors.Invalid("attended", "All lectures for this course are already marked")
	}
	now := s.clock.Now()
	course.Attended = append(course.Attended, now)
	s.persist(ctx, "mark_attendance")
	return MarkResult{Course: course.Clone(), MarkedAt: now, TargetReached: domain.OnTrack(*course)}, nil
}

func (s *CourseService) ResetAttendance(ctx context.Context, courseID string) (domain.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.root.IndexOf(courseID)
	if idx < 0 {
		return domain.Course{}, notFound(courseID)
	}
	s.root.Courses[idx].Attended = []time.Time{}
	s.persist(ctx, "reset_attendance")
	return s.root.Courses[idx].Clone(), nil
}

func (s *CourseService) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.Settings
}

func (s *CourseService) ToggleDarkMode(ctx context.Context) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.root.Settings.DarkMode = !s.root.Settings.DarkMode
	s.persist(ctx, "toggle_dark_mode")
	return s.root.Settings
}

const maxMintAttempts = 4

// mintID retries when a generator repeats an id already in use, then falls
// back to suffixing so the loop always terminates.
func (s *CourseService) mintID() string {
	base := s.idGen.New()
	candidate := base
	for n := 1; s.root.IndexOf(candidate) >= 0; n++ {
		s.log.Warn("generated course id collided, retrying", "id", candidate)
		if n < maxMintAttempts {
			candidate = s.idGen.New()
			continue
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return candidate
}

func (s *CourseService) persist(ctx context.Context, op string) {
	payload, err := domain.Serialize(s.root)
	if err != nil {
		s.log.Error("serialize attendance state", "op", op, "error", err)
		return
	}
	if err := s.store.Write(ctx, payload); err != nil {
		s.log.Error("persist attendance state", "op", op, "error", err)
		return
	}
	s.log.Debug("attendance state persisted", "op", op, "bytes", len(payload))
}

func notFound(courseID string) error {
	return fmt.Errorf("course %q: %w", courseID, apperrors.ErrNotFound)
}
