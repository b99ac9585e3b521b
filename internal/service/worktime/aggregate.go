// Package worktime turns a worker's punch log into per-day worked time and
// a live status.
//
// Everything here is a pure function of its input: no I/O, no shared mutable
// state. Malformed sequences (duplicate clock-ins, orphan pauses, sessions
// left open) never fail; they are resolved by the rules in Policy and
// reported as Adjustments.
package worktime

import (
	"sort"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/shopspring/decimal"

	"timeclock/backend/internal/entity"
)

var nanosPerHour = decimal.NewFromInt(int64(time.Hour))

// DaySummary is the worked time of one UTC calendar day. It is recomputed on
// every query and never stored.
type DaySummary struct {
	Date        date.Date
	Worked      time.Duration
	Adjustments []Adjustment
}

// WorkedSeconds is never negative.
func (d DaySummary) WorkedSeconds() float64 {
	return d.Worked.Seconds()
}

// Hours is the worked time in hours rounded half-up to two decimals.
func (d DaySummary) Hours() decimal.Decimal {
	return Hours(d.Worked)
}

// Hours converts d to hours rounded half-up to two decimals. Negative values
// are reported as zero.
func Hours(d time.Duration) decimal.Decimal {
	if d <= 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(int64(d)).Div(nanosPerHour).Round(2)
}

// Aggregator computes DaySummaries under a fixed Policy. The zero value is
// not useful; use NewAggregator.
type Aggregator struct {
	policy Policy
}

func NewAggregator(policy Policy) Aggregator {
	return Aggregator{policy: policy}
}

// Aggregate uses DefaultPolicy.
func Aggregate(events []entity.PunchEvent) []DaySummary {
	return NewAggregator(DefaultPolicy).Aggregate(events)
}

// Aggregate returns one summary per UTC calendar day that has at least one
// event, most recent day first. Empty input yields nil.
func (a Aggregator) Aggregate(events []entity.PunchEvent) []DaySummary {
	sorted := sortEvents(events)

	var days []DaySummary
	for start := 0; start < len(sorted); {
		day := utcDay(sorted[start].Timestamp)

		end := start + 1
		for end < len(sorted) && utcDay(sorted[end].Timestamp).Equal(day) {
			end++
		}

		days = append(days, a.summarize(day, sorted[start:end]))
		start = end
	}

	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}

	return days
}

// summarize folds one day's events, already in ascending order.
func (a Aggregator) summarize(day time.Time, events []entity.PunchEvent) DaySummary {
	var st dayState
	for _, e := range events {
		st = a.policy.step(st, e)
	}

	if st.session.open && a.policy.CreditResidual {
		st.worked += st.session.creditUntil(st.last)
		st = st.note(RuleResidualCredit, st.last)
	}

	if st.worked < 0 {
		st.worked = 0
	}

	return DaySummary{
		Date:        date.Date{Time: day},
		Worked:      st.worked,
		Adjustments: st.adjustments,
	}
}

type session struct {
	open       bool
	clockIn    time.Time
	paused     bool
	pauseStart time.Time
	pauses     time.Duration
}

func openSession(at time.Time) session {
	return session{open: true, clockIn: at}
}

// creditUntil is the session's worked time up to at, never negative. An
// open pause is not deducted.
func (s session) creditUntil(at time.Time) time.Duration {
	credit := at.Sub(s.clockIn) - s.pauses
	if credit < 0 {
		return 0
	}

	return credit
}

type dayState struct {
	worked      time.Duration
	session     session
	last        time.Time
	adjustments []Adjustment
}

func (st dayState) note(rule Rule, at time.Time) dayState {
	adjustments := make([]Adjustment, len(st.adjustments), len(st.adjustments)+1)
	copy(adjustments, st.adjustments)
	st.adjustments = append(adjustments, Adjustment{Rule: rule, At: at})

	return st
}

// step is the per-event transition of the day fold.
func (p Policy) step(st dayState, e entity.PunchEvent) dayState {
	at := e.Timestamp.UTC()
	st.last = at

	switch e.Type {
	case entity.ClockIn:
		if st.session.open {
			return p.duplicateClockIn(st, at)
		}
		st.session = openSession(at)

	case entity.PauseStart:
		if !st.session.open || st.session.paused {
			return st.note(RuleOrphanPauseStart, at)
		}
		st.session.paused = true
		st.session.pauseStart = at

	case entity.PauseEnd:
		if !st.session.paused {
			return st.note(RuleOrphanPauseEnd, at)
		}
		st.session.pauses += at.Sub(st.session.pauseStart)
		st.session.paused = false

	case entity.ClockOut:
		if !st.session.open {
			return st.note(RuleOrphanClockOut, at)
		}
		if st.session.paused {
			st.session.pauses += at.Sub(st.session.pauseStart)
			st.session.paused = false
		}
		st.worked += st.session.creditUntil(at)
		st.session = session{}

	default:
		return st.note(RuleUnknownType, at)
	}

	return st
}

// sortEvents returns a copy ordered by timestamp, then created_at. Equal
// keys keep their input order.
func sortEvents(events []entity.PunchEvent) []entity.PunchEvent {
	sorted := make([]entity.PunchEvent, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		return before(sorted[i], sorted[j])
	})

	return sorted
}

func before(a, b entity.PunchEvent) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}

	return a.CreatedAt.Before(b.CreatedAt)
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
