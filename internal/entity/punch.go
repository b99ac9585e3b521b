package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type PunchType string

const (
	ClockIn    PunchType = "clock_in"
	ClockOut   PunchType = "clock_out"
	PauseStart PunchType = "pause_start"
	PauseEnd   PunchType = "pause_end"
)

var punchTypes = []PunchType{ClockIn, ClockOut, PauseStart, PauseEnd}

// ParsePunchType accepts the canonical names and their dashed form.
func ParsePunchType(s string) (PunchType, error) {
	normalized := PunchType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, t := range punchTypes {
		if t == normalized {
			return t, nil
		}
	}

	return "", fmt.Errorf("unknown punch type %q", s)
}

func (t PunchType) Valid() bool {
	_, err := ParsePunchType(string(t))
	return err == nil
}

// PunchEvent is one worker action. Rows are append-only: nothing updates or
// deletes them.
type PunchEvent struct {
	bun.BaseModel `bun:"table:punch_events"`

	ID        uuid.UUID `json:"id"         bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	WorkerID  uuid.UUID `json:"worker_id"  bun:"worker_id,type:uuid,notnull"`
	CompanyID uuid.UUID `json:"company_id" bun:"company_id,type:uuid,notnull"`
	Type      PunchType `json:"type"       bun:"type,notnull"`
	Timestamp time.Time `json:"timestamp"  bun:"punched_at,notnull"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull"`
}
