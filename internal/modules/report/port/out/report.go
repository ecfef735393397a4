package out

import (
	"context"

	"attend/internal/modules/report/domain"
)

type ReportStore interface {
	Save(ctx context.Context, report domain.Report) (string, error)
}
