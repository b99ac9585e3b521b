package worktime

import "time"

// Rule names one reconciliation decision taken while scanning a day.
type Rule string

const (
	// RuleImplicitClose: a ClockIn arrived while a session was open. The open
	// session is credited up to that ClockIn and a new one starts there.
	RuleImplicitClose Rule = "implicit_close"
	// RuleKeepOpenSession: a ClockIn arrived while a session was open and was
	// ignored.
	RuleKeepOpenSession Rule = "keep_open_session"
	// RuleOrphanPauseStart: PauseStart with no open session or while paused.
	RuleOrphanPauseStart Rule = "orphan_pause_start"
	// RuleOrphanPauseEnd: PauseEnd with no open pause.
	RuleOrphanPauseEnd Rule = "orphan_pause_end"
	// RuleOrphanClockOut: ClockOut with no open session.
	RuleOrphanClockOut Rule = "orphan_clock_out"
	// RuleResidualCredit: a session was still open after the day's last event
	// and was credited up to that event.
	RuleResidualCredit Rule = "residual_credit"
	// RuleUnknownType: the event type is not a punch type.
	RuleUnknownType Rule = "unknown_type"
)

// Adjustment records where a rule was applied.
type Adjustment struct {
	Rule Rule      `json:"rule"`
	At   time.Time `json:"at"`
}

// DuplicateClockIn selects how a ClockIn observed during an open session is
// resolved.
type DuplicateClockIn int

const (
	// ImplicitClose treats the second ClockIn as closing the prior session at
	// that moment. Recovers from client double submission.
	ImplicitClose DuplicateClockIn = iota
	// KeepOpenSession ignores the second ClockIn.
	KeepOpenSession
)

// Policy is the full set of reconciliation rules applied by an Aggregator.
type Policy struct {
	DuplicateClockIn DuplicateClockIn
	// CreditResidual credits a session left open at the end of a day up to the
	// day's last event.
	CreditResidual bool
}

// DefaultPolicy is the policy reports are computed with.
var DefaultPolicy = Policy{
	DuplicateClockIn: ImplicitClose,
	CreditResidual:   true,
}

// duplicateClockIn applies the configured rule to a ClockIn at `at` while
// st.session is open.
func (p Policy) duplicateClockIn(st dayState, at time.Time) dayState {
	switch p.DuplicateClockIn {
	case KeepOpenSession:
		return st.note(RuleKeepOpenSession, at)
	default:
		st.worked += st.session.creditUntil(at)
		st.session = openSession(at)
		return st.note(RuleImplicitClose, at)
	}
}
