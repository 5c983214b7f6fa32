package input

import (
	"context"

	"forecast-agent/internal/domain/entity"
)

type ForecastRunner interface {
	Run(ctx context.Context, question entity.Question) (*entity.ForecastResult, error)
}
