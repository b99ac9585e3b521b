package worker

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
}

type SignInRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type GetListResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    *string   `json:"email"`
	FullName *string   `json:"full_name"`
	Role     *string   `json:"role"`
}

type CreateRequest struct {
	Email    *string `json:"email"     form:"email"`
	Password *string `json:"password"  form:"password"`
	FullName *string `json:"full_name" form:"full_name"`
	Role     *string `json:"role"      form:"role"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:workers"`

	ID        uuid.UUID `json:"id"         bun:"id,pk,type:uuid"`
	CompanyID uuid.UUID `json:"company_id" bun:"company_id,type:uuid"`
	Email     *string   `json:"email"      bun:"email"`
	FullName  *string   `json:"full_name"  bun:"full_name"`
	Password  *string   `json:"-"          bun:"password"`
	Role      *string   `json:"role"       bun:"role"`
	CreatedAt time.Time `json:"created_at" bun:"created_at"`
}
