package punch

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/google/uuid"

	"timeclock/backend/internal/service/worktime"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
}

type MarkRequest struct {
	Type string `json:"type" form:"type" uri:"type"`
}

type DailyHoursResponse struct {
	Date          date.Date             `json:"date"`
	Hours         float64               `json:"hours"`
	WorkedSeconds float64               `json:"worked_seconds"`
	Adjustments   []worktime.Adjustment `json:"adjustments,omitempty"`
}

type StatusResponse struct {
	WorkerID uuid.UUID      `json:"worker_id"`
	State    worktime.State `json:"state"`
	AsOf     *time.Time     `json:"as_of"`
}

type BoardResponse struct {
	WorkerID uuid.UUID      `json:"worker_id"`
	FullName *string        `json:"full_name"`
	Email    *string        `json:"email"`
	State    worktime.State `json:"state"`
	AsOf     *time.Time     `json:"as_of"`
}
