package worker

import (
	"context"

	"github.com/google/uuid"

	"timeclock/backend/internal/entity"
	"timeclock/backend/internal/repository/postgres/worker"
)

type Worker interface {
	GetMe(ctx context.Context) (entity.Worker, error)
	GetList(ctx context.Context, filter worker.Filter) ([]worker.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id uuid.UUID) (entity.Worker, error)
	Create(ctx context.Context, request worker.CreateRequest) (worker.CreateResponse, error)
}
