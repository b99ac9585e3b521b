package worktime

import (
	"time"

	"timeclock/backend/internal/entity"
)

type State string

const (
	ClockedIn  State = "clocked_in"
	OnPause    State = "on_pause"
	ClockedOut State = "clocked_out"
	NoRecord   State = "no_record"
)

// WorkerStatus is a worker's live state. AsOf is nil for NoRecord.
type WorkerStatus struct {
	State State
	AsOf  *time.Time
}

// StateFor maps the type of a worker's latest event to their state.
func StateFor(t entity.PunchType) (State, bool) {
	switch t {
	case entity.ClockIn, entity.PauseEnd:
		return ClockedIn, true
	case entity.PauseStart:
		return OnPause, true
	case entity.ClockOut:
		return ClockedOut, true
	}

	return "", false
}

// Resolve returns the status implied by the latest event. Simultaneous
// events are ordered by created_at; on a full tie the later element of
// events wins. Events of unknown type are skipped.
func Resolve(events []entity.PunchEvent) WorkerStatus {
	var (
		latest entity.PunchEvent
		state  State
		found  bool
	)

	for _, e := range events {
		s, ok := StateFor(e.Type)
		if !ok {
			continue
		}

		if !found || !before(e, latest) {
			latest, state, found = e, s, true
		}
	}

	if !found {
		return WorkerStatus{State: NoRecord}
	}

	asOf := latest.Timestamp.UTC()

	return WorkerStatus{State: state, AsOf: &asOf}
}
