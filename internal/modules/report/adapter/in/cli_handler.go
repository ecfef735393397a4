package in

import (
	"context"

	reportdto "attend/internal/modules/report/dto"
	reportin "attend/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Export(ctx context.Context, courseID string) (reportdto.ExportOutput, error) {
	return h.usecase.Export(ctx, reportdto.ExportInput{CourseID: courseID})
}
