package in

import (
	"context"

	"attend/internal/modules/report/dto"
)

type Usecase interface {
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
