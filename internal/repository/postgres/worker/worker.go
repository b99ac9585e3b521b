package worker

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

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

// GetByEmail is used by sign-in and therefore needs no claims.
func (r Repository) GetByEmail(ctx context.Context, email string) (entity.Worker, error) {
	var detail entity.Worker

	err := r.NewSelect().Model(&detail).Where("lower(email) = lower(?)", strings.TrimSpace(email)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Worker{}, web.NewRequestError(errors.New("worker not found"), http.StatusUnauthorized)
	}
	if err != nil {
		return entity.Worker{}, web.NewRequestError(errors.Wrap(err, "selecting worker"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetMe(ctx context.Context) (entity.Worker, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.Worker{}, err
	}

	return r.getById(ctx, claims.UserId)
}

// GetDetailById is open to the worker themselves and to admins of the same
// company.
func (r Repository) GetDetailById(ctx context.Context, id uuid.UUID) (entity.Worker, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return entity.Worker{}, err
	}

	detail, err := r.getById(ctx, id)
	if err != nil {
		return entity.Worker{}, err
	}

	if !claims.CanRead(detail.ID, detail.CompanyID) {
		return entity.Worker{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return detail, nil
}

func (r Repository) getById(ctx context.Context, id uuid.UUID) (entity.Worker, error) {
	var detail entity.Worker

	err := r.NewSelect().Model(&detail).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Worker{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Worker{}, web.NewRequestError(errors.Wrap(err, "selecting worker"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	var workers []entity.Worker

	q := r.NewSelect().Model(&workers).Where("company_id = ?", claims.CompanyId)
	if filter.Search != nil {
		q = q.Where("(full_name ILIKE ? OR email ILIKE ?)", "%"+*filter.Search+"%", "%"+*filter.Search+"%")
	}
	if filter.Limit != nil {
		q = q.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		q = q.Offset(*filter.Offset)
	}

	count, err := q.Order("full_name").ScanAndCount(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting workers"), http.StatusInternalServerError)
	}

	list := make([]GetListResponse, 0, len(workers))
	for _, w := range workers {
		list = append(list, GetListResponse{ID: w.ID, Email: w.Email, FullName: w.FullName, Role: w.Role})
	}

	return list, count, nil
}

// Create adds a worker to the admin's company.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Email", "Password", "FullName"); err != nil {
		return CreateResponse{}, err
	}

	role := auth.RoleEmployee
	if request.Role != nil {
		role = strings.ToUpper(*request.Role)
	}
	if role != auth.RoleEmployee && role != auth.RoleAdmin {
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect role. role should be EMPLOYEE or ADMIN"), http.StatusBadRequest)
	}

	exists, err := r.NewSelect().Model((*entity.Worker)(nil)).Where("lower(email) = lower(?)", *request.Email).Exists(ctx)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "email check"), http.StatusInternalServerError)
	}
	if exists {
		return CreateResponse{}, web.NewRequestError(errors.New("email is used"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashedPassword := string(hash)

	response := CreateResponse{
		ID:        uuid.New(),
		CompanyID: claims.CompanyId,
		Email:     request.Email,
		FullName:  request.FullName,
		Password:  &hashedPassword,
		Role:      &role,
		CreatedAt: time.Now().UTC(),
	}

	if _, err = r.NewInsert().Model(&response).Exec(ctx); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating worker"), http.StatusBadRequest)
	}

	response.Password = nil

	return response, nil
}
