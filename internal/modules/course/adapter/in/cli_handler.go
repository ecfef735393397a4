package in

import (
	"context"

	coursedto "attend/internal/modules/course/dto"
	coursein "attend/internal/modules/course/port/in"
)

type CLIHandler struct {
	usecase coursein.Usecase
}

func NewCLIHandler(usecase coursein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, name, totalLectures, targetPercent string) (coursedto.CourseOutput, error) {
	return h.usecase.AddCourse(ctx, coursedto.AddCourseInput{Name: name, TotalLectures: totalLectures, TargetPercent: targetPercent})
}

func (h CLIHandler) Edit(ctx context.Context, courseID, name, totalLectures, targetPercent, attended string) (coursedto.CourseOutput, error) {
	return h.usecase.EditCourse(ctx, coursedto.EditCourseInput{
		CourseID:      courseID,
		Name:          name,
		TotalLectures: totalLectures,
		TargetPercent: targetPercent,
		Attended:      attended,
	})
}

func (h CLIHandler) Remove(ctx context.Context, courseID string) error {
	return h.usecase.RemoveCourse(ctx, courseID)
}

func (h CLIHandler) Mark(ctx context.Context, courseID string) (coursedto.MarkOutput, error) {
	return h.usecase.MarkAttendance(ctx, courseID)
}

func (h CLIHandler) Reset(ctx context.Context, courseID string) (coursedto.CourseOutput, error) {
	return h.usecase.ResetAttendance(ctx, courseID)
}

func (h CLIHandler) List(ctx context.Context) ([]coursedto.CourseOutput, error) {
	return h.usecase.ListCourses(ctx)
}

func (h CLIHandler) Show(ctx context.Context, courseID string) (coursedto.CourseDetailOutput, error) {
	return h.usecase.GetCourse(ctx, courseID)
}

func (h CLIHandler) Overview(ctx context.Context) (coursedto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) Settings(ctx context.Context) (coursedto.SettingsOutput, error) {
	return h.usecase.GetSettings(ctx)
}

func (h CLIHandler) ToggleDarkMode(ctx context.Context) (coursedto.SettingsOutput, error) {
	return h.usecase.ToggleDarkMode(ctx)
}
