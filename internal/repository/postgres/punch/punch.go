package punch

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/entity"
	"timeclock/backend/internal/pkg/repository/postgresql"
	"timeclock/backend/internal/repository/postgres"
	"timeclock/backend/internal/repository/redis/markguard"
	"timeclock/backend/internal/service/worktime"
)

type Repository struct {
	*postgresql.Database
	guard      *markguard.Guard
	aggregator worktime.Aggregator
}

func NewRepository(database *postgresql.Database, guard *markguard.Guard, aggregator worktime.Aggregator) *Repository {
	return &Repository{Database: database, guard: guard, aggregator: aggregator}
}

// Mark appends a punch of the given type for the calling worker.
func (r Repository) Mark(ctx context.Context, punchType string) (entity.PunchEvent, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.PunchEvent{}, err
	}

	t, err := entity.ParsePunchType(punchType)
	if err != nil {
		return entity.PunchEvent{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	if err = r.guard.Acquire(ctx, claims.UserId, t); err != nil {
		var webErr *web.Error
		if errors.As(err, &webErr) {
			return entity.PunchEvent{}, err
		}
		log.Println("mark guard unavailable:", err)
	}

	now := time.Now().UTC()
	event := entity.PunchEvent{
		ID:        uuid.New(),
		WorkerID:  claims.UserId,
		CompanyID: claims.CompanyId,
		Type:      t,
		Timestamp: now,
		CreatedAt: now,
	}

	if _, err = r.NewInsert().Model(&event).Exec(ctx); err != nil {
		return entity.PunchEvent{}, web.NewRequestError(errors.Wrap(err, "creating punch"), http.StatusInternalServerError)
	}

	return event, nil
}

// ListByWorker returns the worker's events in [from, to) ascending by
// (timestamp, created_at). A nil bound is open.
func (r Repository) ListByWorker(ctx context.Context, workerID uuid.UUID, from, to *time.Time) ([]entity.PunchEvent, error) {
	var events []entity.PunchEvent

	q := r.NewSelect().Model(&events).Where("worker_id = ?", workerID)
	if from != nil {
		q = q.Where("punched_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("punched_at < ?", *to)
	}

	if err := q.OrderExpr("punched_at ASC, created_at ASC").Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting punches"), http.StatusInternalServerError)
	}

	return events, nil
}

// GetHistory returns the worker's punches newest first.
func (r Repository) GetHistory(ctx context.Context, workerID uuid.UUID, filter Filter) ([]entity.PunchEvent, int, error) {
	if _, err := r.authorize(ctx, workerID); err != nil {
		return nil, 0, err
	}

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	var list []entity.PunchEvent

	q := r.NewSelect().Model(&list).
		Where("worker_id = ?", workerID).
		OrderExpr("punched_at DESC, created_at DESC")
	if filter.Limit != nil {
		q = q.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		q = q.Offset(*filter.Offset)
	}

	count, err := q.ScanAndCount(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting punch history"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// GetDaySummaries aggregates every punch of the worker into per-day totals,
// newest day first.
func (r Repository) GetDaySummaries(ctx context.Context, workerID uuid.UUID) ([]worktime.DaySummary, error) {
	if _, err := r.authorize(ctx, workerID); err != nil {
		return nil, err
	}

	events, err := r.ListByWorker(ctx, workerID, nil, nil)
	if err != nil {
		return nil, err
	}

	return r.aggregator.Aggregate(events), nil
}

func (r Repository) GetDailyHours(ctx context.Context, workerID uuid.UUID) ([]DailyHoursResponse, error) {
	days, err := r.GetDaySummaries(ctx, workerID)
	if err != nil {
		return nil, err
	}

	list := make([]DailyHoursResponse, 0, len(days))
	for _, d := range days {
		list = append(list, DailyHoursResponse{
			Date:          d.Date,
			Hours:         d.Hours().InexactFloat64(),
			WorkedSeconds: d.WorkedSeconds(),
			Adjustments:   d.Adjustments,
		})
	}

	return list, nil
}

// GetStatus resolves the worker's live state from their latest punch.
func (r Repository) GetStatus(ctx context.Context, workerID uuid.UUID) (StatusResponse, error) {
	if _, err := r.authorize(ctx, workerID); err != nil {
		return StatusResponse{}, err
	}

	var latest []entity.PunchEvent

	err := r.NewSelect().Model(&latest).
		Where("worker_id = ?", workerID).
		OrderExpr("punched_at DESC, created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return StatusResponse{}, web.NewRequestError(errors.Wrap(err, "selecting latest punch"), http.StatusInternalServerError)
	}

	status := worktime.Resolve(latest)

	return StatusResponse{WorkerID: workerID, State: status.State, AsOf: status.AsOf}, nil
}

// GetWeeklyEvents returns the raw punches of the seven days starting at
// weekStart (UTC).
func (r Repository) GetWeeklyEvents(ctx context.Context, workerID uuid.UUID, weekStart date.Date) ([]entity.PunchEvent, error) {
	if _, err := r.authorize(ctx, workerID); err != nil {
		return nil, err
	}

	from := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	events, err := r.ListByWorker(ctx, workerID, &from, &to)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "no punches in this week"), http.StatusNotFound)
	}

	return events, nil
}

// GetBoard lists every worker of the admin's company with their live state.
func (r Repository) GetBoard(ctx context.Context) ([]BoardResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			w.id,
			w.full_name,
			w.email,
			e.type,
			e.punched_at,
			e.created_at
		FROM workers AS w
		LEFT JOIN LATERAL (
			SELECT pe.type, pe.punched_at, pe.created_at
			FROM punch_events AS pe
			WHERE pe.worker_id = w.id
			ORDER BY pe.punched_at DESC, pe.created_at DESC
			LIMIT 1
		) AS e ON true
		WHERE w.company_id = ?
		ORDER BY w.full_name
	`

	rows, err := r.QueryContext(ctx, query, claims.CompanyId)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting board"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []BoardResponse
	for rows.Next() {
		var (
			detail    BoardResponse
			punchType sql.NullString
			punchedAt sql.NullTime
			createdAt sql.NullTime
		)

		if err = rows.Scan(&detail.WorkerID, &detail.FullName, &detail.Email, &punchType, &punchedAt, &createdAt); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning board"), http.StatusInternalServerError)
		}

		var latest []entity.PunchEvent
		if punchType.Valid {
			latest = append(latest, entity.PunchEvent{
				Type:      entity.PunchType(punchType.String),
				Timestamp: punchedAt.Time,
				CreatedAt: createdAt.Time,
			})
		}

		status := worktime.Resolve(latest)
		detail.State, detail.AsOf = status.State, status.AsOf

		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading board"), http.StatusInternalServerError)
	}

	return list, nil
}

// authorize lets a worker read themselves and an admin read workers of their
// own company.
func (r Repository) authorize(ctx context.Context, workerID uuid.UUID) (auth.Claims, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return auth.Claims{}, err
	}

	if claims.UserId == workerID {
		return claims, nil
	}
	if claims.Role != auth.RoleAdmin {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	var worker entity.Worker

	err = r.NewSelect().Model(&worker).Column("id", "company_id").Where("id = ?", workerID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.Claims{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return auth.Claims{}, web.NewRequestError(errors.Wrap(err, "selecting worker"), http.StatusInternalServerError)
	}

	if !claims.CanRead(worker.ID, worker.CompanyID) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return claims, nil
}
