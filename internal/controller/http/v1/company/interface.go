package company

import (
	"context"

	"timeclock/backend/internal/repository/postgres/company"
)

type Company interface {
	GetInfo(ctx context.Context) (company.GetInfoResponse, error)
	UpdateColumns(ctx context.Context, request company.UpdateRequest) error
}
