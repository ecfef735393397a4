package usecase

import (
	"context"
	"strings"

	coursedto "attend/internal/modules/course/dto"
	"attend/internal/modules/report/domain"
	reportdto "attend/internal/modules/report/dto"
	reportin "attend/internal/modules/report/port/in"
	reportout "attend/internal/modules/report/port/out"
	"attend/internal/platform/clock"
	apperrors "attend/internal/platform/errors"
)

type coursePort interface {
	GetCourse(ctx context.Context, courseID string) (coursedto.CourseDetailOutput, error)
}

type Interactor struct {
	courses coursePort
	clock   clock.Clock
	store   reportout.ReportStore
}

func NewInteractor(courses coursePort, clock clock.Clock, store reportout.ReportStore) reportin.Usecase {
	return &Interactor{courses: courses, clock: clock, store: store}
}

func (i *Interactor) Export(ctx context.Context, input reportdto.ExportInput) (reportdto.ExportOutput, error) {
	if strings.TrimSpace(input.CourseID) == "" {
		return reportdto.ExportOutput{}, apperrors.Invalid("course_id", "Course id is required")
	}
	detail, err := i.courses.GetCourse(ctx, input.CourseID)
	if err != nil {
		return reportdto.ExportOutput{}, err
	}
	report := domain.Report{
		CourseID:       detail.ID,
		CourseName:     detail.Name,
		Attended:       detail.Attended,
		TotalLectures:  detail.TotalLectures,
		TargetPercent:  detail.TargetPercent,
		CurrentPercent: detail.Percent,
		Status:         detail.Status,
		Message:        detail.Message,
		SafeSkips:      detail.SafeSkips,
		Needed:         detail.Needed,
		LongestStreak:  detail.Statistics.LongestStreak,
		AveragePerWeek: detail.Statistics.AveragePerWeek,
		MostActiveDay:  detail.Statistics.MostActiveDay,
		ExportedAt:     i.clock.Now(),
	}
	for _, h := range detail.History {
		report.History = append(report.History, domain.Entry{Ordinal: h.Ordinal, At: h.At})
	}
	path, err := i.store.Save(ctx, report)
	if err != nil {
		return reportdto.ExportOutput{}, err
	}
	return reportdto.ExportOutput{CourseID: detail.ID, Path: path}, nil
}
