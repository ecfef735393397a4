package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"attend/internal/modules/course/domain"
	coursedto "attend/internal/modules/course/dto"
	coursein "attend/internal/modules/course/port/in"
	"attend/internal/modules/course/service"
	apperrors "attend/internal/platform/errors"
)

type Interactor struct {
	svc *service.CourseService
	loc *time.Location
}

// NewInteractor builds the course usecase. loc is the zone calendar statistics
// are computed in; nil means local time.
func NewInteractor(svc *service.CourseService, loc *time.Location) coursein.Usecase {
	if loc == nil {
		loc = time.Local
	}
	return &Interactor{svc: svc, loc: loc}
}

func (i *Interactor) AddCourse(ctx context.Context, input coursedto.AddCourseInput) (coursedto.CourseOutput, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.TotalLectures) == "" || strings.TrimSpace(input.TargetPercent) == "" {
		return coursedto.CourseOutput{}, apperrors.Invalid("", "Please fill in all fields")
	}
	total, err := parseCount("total_lectures", input.TotalLectures)
	if err != nil {
		return coursedto.CourseOutput{}, err
	}
	target, err := parseCount("target_percent", input.TargetPercent)
	if err != nil {
		return coursedto.CourseOutput{}, err
	}
	course, err := i.svc.AddCourse(ctx, input.Name, total, target)
	if err != nil {
		return coursedto.CourseOutput{}, err
	}
	return i.toCourseOutput(course), nil
}

func (i *Interactor) EditCourse(ctx context.Context, input coursedto.EditCourseInput) (coursedto.CourseOutput, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.TotalLectures) == "" ||
		strings.TrimSpace(input.TargetPercent) == "" || strings.TrimSpace(input.Attended) == "" {
		return coursedto.CourseOutput{}, apperrors.Invalid("", "Please fill in all fields")
	}
	total, err := parseCount("total_lectures", input.TotalLectures)
	if err != nil {
		return coursedto.CourseOutput{}, err
	}
	target, err := parseCount("target_percent", input.TargetPercent)
	if err != nil {
		return coursedto.CourseOutput{}, err
	}
	attended, err := parseCount("attended", input.Attended)
	if err != nil {
		return coursedto.CourseOutput{}, err
	}
	course, err := i.svc.EditCourse(ctx, input.CourseID, input.Name, total, target, attended)
	if err != nil {
		return coursedto.CourseOutput{}, err
	}
	return i.toCourseOutput(course), nil
}

func (i *Interactor) RemoveCourse(ctx context.Context, courseID string) error {
	i.svc.RemoveCourse(ctx, courseID)
	return nil
}

func (i *Interactor) MarkAttendance(ctx context.Context, courseID string) (coursedto.MarkOutput, error) {
	res, err := i.svc.MarkAttendance(ctx, courseID)
	if err != nil {
		return coursedto.MarkOutput{}, err
	}
	return coursedto.MarkOutput{Course: i.toCourseOutput(res.Course), MarkedAt: res.MarkedAt.In(i.loc), TargetReached: res.TargetReached}, nil
}

func (i *Interactor) ResetAttendance(ctx context.Context, courseID string) (coursedto.CourseOutput, error) {
	course, err := i.svc.ResetAttendance(ctx, courseID)
	if err != nil {
		return coursedto.CourseOutput{}, err
	}
	return i.toCourseOutput(course), nil
}

func (i *Interactor) ListCourses(_ context.Context) ([]coursedto.CourseOutput, error) {
	courses := i.svc.ListCourses()
	out := make([]coursedto.CourseOutput, 0, len(courses))
	for _, c := range courses {
		out = append(out, i.toCourseOutput(c))
	}
	return out, nil
}

func (i *Interactor) GetCourse(_ context.Context, courseID string) (coursedto.CourseDetailOutput, error) {
	course, err := i.svc.FindCourse(courseID)
	if err != nil {
		return coursedto.CourseDetailOutput{}, err
	}
	summary := i.toCourseOutput(course)
	stats := domain.ComputeStatistics(course, i.loc)
	detail := coursedto.CourseDetailOutput{
		CourseOutput: summary,
		Statistics: coursedto.StatisticsOutput{
			TotalDays:      stats.TotalDays,
			LongestStreak:  stats.LongestStreak,
			AveragePerWeek: stats.AveragePerWeek,
			MostActiveDay:  "N/A",
		},
	}
	if stats.HasActiveDay {
		detail.Statistics.MostActiveDay = stats.MostActiveDay.String()
	}
	for _, s := range stats.TimeSlots {
		detail.Statistics.TimeSlots = append(detail.Statistics.TimeSlots, coursedto.SlotOutput{Label: s.Slot.String(), Count: s.Count, Percent: s.Percent})
	}
	for _, w := range stats.Weekdays {
		detail.Statistics.Weekdays = append(detail.Statistics.Weekdays, coursedto.WeekdayOutput{Day: w.Weekday.String(), Count: w.Count, Percent: w.Percent})
	}
	for _, h := range domain.History(course.Attended) {
		detail.History = append(detail.History, coursedto.HistoryOutput{Ordinal: h.Ordinal, At: h.At.In(i.loc)})
	}
	return detail, nil
}

func (i *Interactor) Overview(_ context.Context) (coursedto.OverviewOutput, error) {
	o := domain.Summarize(i.svc.ListCourses())
	return coursedto.OverviewOutput{Total: o.Total, OnTrack: o.OnTrack}, nil
}

func (i *Interactor) GetSettings(_ context.Context) (coursedto.SettingsOutput, error) {
	return coursedto.SettingsOutput{DarkMode: i.svc.Settings().DarkMode}, nil
}

func (i *Interactor) ToggleDarkMode(ctx context.Context) (coursedto.SettingsOutput, error) {
	return coursedto.SettingsOutput{DarkMode: i.svc.ToggleDarkMode(ctx).DarkMode}, nil
}

func parseCount(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperrors.Invalid(field, "Please enter a whole number")
	}
	return n, nil
}

// StatusInvalid marks stored records whose progress cannot be computed.
const StatusInvalid = "invalid"

func (i *Interactor) toCourseOutput(c domain.Course) coursedto.CourseOutput {
	out := coursedto.CourseOutput{
		ID:            c.ID,
		Name:          c.Name,
		TotalLectures: c.TotalLectures,
		TargetPercent: c.TargetPercent,
		Attended:      len(c.Attended),
	}
	progress, err := domain.ComputeProgress(c)
	if err != nil {
		// Only loaded records can have no lectures; editing the course repairs it.
		out.Status = StatusInvalid
		out.Message = "Set the total number of lectures for this course"
	} else {
		out.Percent = progress.Percent
		out.Remaining = progress.Remaining
		out.Needed = progress.Needed
		out.SafeSkips = progress.SafeSkips
		out.Status = progress.Status.String()
		out.Message = progress.Message
	}
	if last, ok := domain.LastMarked(c); ok {
		out.LastMarked = last.In(i.loc)
		out.HasLastMarked = true
	}
	return out
}
