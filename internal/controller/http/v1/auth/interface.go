package auth

import (
	"context"

	"timeclock/backend/internal/entity"
)

type Worker interface {
	GetByEmail(ctx context.Context, email string) (entity.Worker, error)
}
