package output

import (
	"context"

	"forecast-agent/internal/domain/entity"
)

type CompletionPort interface {
	Complete(ctx context.Context, messages []entity.Message) (string, error)
}
