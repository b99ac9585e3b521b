package punch

import (
	"context"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/google/uuid"

	"timeclock/backend/internal/entity"
	"timeclock/backend/internal/repository/postgres/punch"
	"timeclock/backend/internal/service/worktime"
)

type Punch interface {
	Mark(ctx context.Context, punchType string) (entity.PunchEvent, error)
	GetHistory(ctx context.Context, workerID uuid.UUID, filter punch.Filter) ([]entity.PunchEvent, int, error)
	GetDaySummaries(ctx context.Context, workerID uuid.UUID) ([]worktime.DaySummary, error)
	GetDailyHours(ctx context.Context, workerID uuid.UUID) ([]punch.DailyHoursResponse, error)
	GetStatus(ctx context.Context, workerID uuid.UUID) (punch.StatusResponse, error)
	GetWeeklyEvents(ctx context.Context, workerID uuid.UUID, weekStart date.Date) ([]entity.PunchEvent, error)
	GetBoard(ctx context.Context) ([]punch.BoardResponse, error)
}
