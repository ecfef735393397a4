package in

import (
	"context"

	coursedto "attend/internal/modules/course/dto"
	coursein "attend/internal/modules/course/port/in"
)

// TUIHandler exposes the subset of the usecase the dashboard drives.
type TUIHandler struct {
	usecase coursein.Usecase
}

func NewTUIHandler(usecase coursein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) ListCourses(ctx context.Context) ([]coursedto.CourseOutput, error) {
	return h.usecase.ListCourses(ctx)
}

func (h TUIHandler) GetCourse(ctx context.Context, courseID string) (coursedto.CourseDetailOutput, error) {
	return h.usecase.GetCourse(ctx, courseID)
}

func (h TUIHandler) Overview(ctx context.Context) (coursedto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h TUIHandler) Mark(ctx context.Context, courseID string) (coursedto.MarkOutput, error) {
	return h.usecase.MarkAttendance(ctx, courseID)
}

func (h TUIHandler) Reset(ctx context.Context, courseID string) (coursedto.CourseOutput, error) {
	return h.usecase.ResetAttendance(ctx, courseID)
}

func (h TUIHandler) Settings(ctx context.Context) (coursedto.SettingsOutput, error) {
	return h.usecase.GetSettings(ctx)
}

func (h TUIHandler) ToggleDarkMode(ctx context.Context) (coursedto.SettingsOutput, error) {
	return h.usecase.ToggleDarkMode(ctx)
}

func (h TUIHandler) Add(ctx context.Context, name, totalLectures, targetPercent string) (coursedto.CourseOutput, error) {
	return h.usecase.AddCourse(ctx, coursedto.AddCourseInput{Name: name, TotalLectures: totalLectures, TargetPercent: targetPercent})
}

func (h TUIHandler) Edit(ctx context.Context, input coursedto.EditCourseInput) (coursedto.CourseOutput, error) {
	return h.usecase.EditCourse(ctx, input)
}

func (h TUIHandler) Remove(ctx context.Context, courseID string) error {
	return h.usecase.RemoveCourse(ctx, courseID)
}
