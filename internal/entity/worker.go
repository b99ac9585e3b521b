package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Worker struct {
	bun.BaseModel `bun:"table:workers"`

	ID        uuid.UUID `json:"id"         bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	CompanyID uuid.UUID `json:"company_id" bun:"company_id,type:uuid"`
	Email     *string   `json:"email"      bun:"email"`
	FullName  *string   `json:"full_name"  bun:"full_name"`
	Password  *string   `json:"-"          bun:"password"`
	Role      *string   `json:"role"       bun:"role"`
	CreatedAt time.Time `json:"created_at" bun:"created_at"`
}

type Company struct {
	bun.BaseModel `bun:"table:companies"`

	ID        uuid.UUID `json:"id"         bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name      *string   `json:"name"       bun:"name"`
	CreatedAt time.Time `json:"created_at" bun:"created_at"`
}
