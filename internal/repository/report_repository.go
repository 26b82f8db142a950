package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type ReportRepository interface {
	Statistics(ctx context.Context) (model.Statistics, error)
}
