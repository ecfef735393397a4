package in

import (
	"context"

	"attend/internal/modules/course/dto"
)

type Usecase interface {
	AddCourse(ctx context.Context, input dto.AddCourseInput) (dto.CourseOutput, error)
	EditCourse(ctx context.Context, input dto.EditCourseInput) (dto.CourseOutput, error)
	RemoveCourse(ctx context.Context, courseID string) error
	MarkAttendance(ctx context.Context, courseID string) (dto.MarkOutput, error)
	ResetAttendance(ctx context.Context, courseID string) (dto.CourseOutput, error)
	ListCourses(ctx context.Context) ([]dto.CourseOutput, error)
	GetCourse(ctx context.Context, courseID string) (dto.CourseDetailOutput, error)
	Overview(ctx context.Context) (dto.OverviewOutput, error)
	GetSettings(ctx context.Context) (dto.SettingsOutput, error)
	ToggleDarkMode(ctx context.Context) (dto.SettingsOutput, error)
}
