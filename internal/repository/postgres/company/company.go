package company

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"timeclock/backend/foundation/web"
	"timeclock/backend/internal/auth"
	"timeclock/backend/internal/entity"
	"timeclock/backend/internal/pkg/repository/postgresql"
	"timeclock/backend/internal/repository/postgres"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetInfo returns the caller's company.
func (r Repository) GetInfo(ctx context.Context) (GetInfoResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return GetInfoResponse{}, err
	}

	var detail entity.Company

	err = r.NewSelect().Model(&detail).Where("id = ?", claims.CompanyId).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return GetInfoResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetInfoResponse{}, web.NewRequestError(errors.Wrap(err, "selecting company"), http.StatusInternalServerError)
	}

	count, err := r.NewSelect().Model((*entity.Worker)(nil)).Where("company_id = ?", claims.CompanyId).Count(ctx)
	if err != nil {
		return GetInfoResponse{}, web.NewRequestError(errors.Wrap(err, "counting workers"), http.StatusInternalServerError)
	}

	return GetInfoResponse{ID: detail.ID.String(), Name: detail.Name, WorkerCount: count}, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err = r.ValidateStruct(&request, "Name"); err != nil {
		return err
	}

	name := strings.TrimSpace(*request.Name)
	if name == "" {
		return web.NewRequestError(errors.New("name must not be blank"), http.StatusBadRequest)
	}

	res, err := r.NewUpdate().
		Model((*entity.Company)(nil)).
		Set("name = ?", name).
		Where("id = ?", claims.CompanyId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating company"), http.StatusInternalServerError)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}
