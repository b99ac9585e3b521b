package worktime

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"timeclock/backend/internal/entity"
)

var testWorker = uuid.MustParse("6f1c1f4e-3a55-4c1a-9b57-2b1f0d1c0a01")

func punch(t *testing.T, typ entity.PunchType, at string) entity.PunchEvent {
	t.Helper()

	ts, err := time.Parse(time.RFC3339, at)
	if err != nil {
		t.Fatalf("parsing %q: %v", at, err)
	}

	return entity.PunchEvent{
		WorkerID:  testWorker,
		Type:      typ,
		Timestamp: ts,
		CreatedAt: ts,
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		events [][2]string
		hours  []string // per day, most recent first
		dates  []string
	}{
		{
			name:   "empty",
			events: nil,
		},
		{
			name: "alternating pairs sum",
			events: [][2]string{
				{"clock_in", "2025-11-10T08:00:00Z"},
				{"clock_out", "2025-11-10T12:00:00Z"},
				{"clock_in", "2025-11-10T13:00:00Z"},
				{"clock_out", "2025-11-10T16:15:00Z"},
			},
			hours: []string{"7.25"},
			dates: []string{"2025-11-10"},
		},
		{
			name: "pause is deducted",
			events: [][2]string{
				{"clock_in", "2025-11-10T09:00:00Z"},
				{"pause_start", "2025-11-10T12:00:00Z"},
				{"pause_end", "2025-11-10T12:30:00Z"},
				{"clock_out", "2025-11-10T17:00:00Z"},
			},
			hours: []string{"7.5"},
			dates: []string{"2025-11-10"},
		},
		{
			name: "clock out while paused closes the pause first",
			events: [][2]string{
				{"clock_in", "2025-11-10T09:00:00Z"},
				{"pause_start", "2025-11-10T16:00:00Z"},
				{"clock_out", "2025-11-10T17:00:00Z"},
			},
			hours: []string{"7"},
			dates: []string{"2025-11-10"},
		},
		{
			name: "lone clock in has zero residual",
			events: [][2]string{
				{"clock_in", "2025-11-10T09:00:00Z"},
			},
			hours: []string{"0"},
			dates: []string{"2025-11-10"},
		},
		{
			name: "residual credited to last event",
			events: [][2]string{
				{"clock_in", "2025-11-10T09:00:00Z"},
				{"pause_start", "2025-11-10T10:00:00Z"},
				{"pause_end", "2025-11-10T10:30:00Z"},
				{"pause_start", "2025-11-10T12:00:00Z"},
			},
			hours: []string{"2.5"},
			dates: []string{"2025-11-10"},
		},
		{
			name: "duplicate clock in closes implicitly",
			events: [][2]string{
				{"clock_in", "2025-11-10T09:00:00Z"},
				{"clock_in", "2025-11-10T10:00:00Z"},
			},
			hours: []string{"1"},
			dates: []string{"2025-11-10"},
		},
		{
			name: "duplicate clock in then clock out",
			events: [][2]string{
				{"clock_in", "2025-11-10T09:00:00Z"},
				{"pause_start", "2025-11-10T09:10:00Z"},
				{"pause_end", "2025-11-10T09:40:00Z"},
				{"clock_in", "2025-11-10T10:00:00Z"},
				{"clock_out", "2025-11-10T11:00:00Z"},
			},
			hours: []string{"1.5"},
			dates: []string{"2025-11-10"},
		},
		{
			name: "orphans contribute nothing",
			events: [][2]string{
				{"pause_end", "2025-11-10T08:00:00Z"},
				{"clock_out", "2025-11-10T08:10:00Z"},
				{"pause_start", "2025-11-10T08:20:00Z"},
				{"clock_in", "2025-11-10T09:00:00Z"},
				{"pause_start", "2025-11-10T10:00:00Z"},
				{"pause_start", "2025-11-10T10:15:00Z"},
				{"pause_end", "2025-11-10T11:00:00Z"},
				{"pause_end", "2025-11-10T11:05:00Z"},
				{"clock_out", "2025-11-10T13:00:00Z"},
			},
			hours: []string{"3"},
			dates: []string{"2025-11-10"},
		},
		{
			name: "overnight shift splits on UTC midnight",
			events: [][2]string{
				{"clock_in", "2025-11-10T22:00:00Z"},
				{"clock_in", "2025-11-10T23:59:00Z"},
				{"clock_out", "2025-11-11T00:01:00Z"},
			},
			hours: []string{"0", "1.98"},
			dates: []string{"2025-11-11", "2025-11-10"},
		},
		{
			name: "days are most recent first",
			events: [][2]string{
				{"clock_in", "2025-11-08T09:00:00Z"},
				{"clock_out", "2025-11-08T10:00:00Z"},
				{"clock_in", "2025-11-10T09:00:00Z"},
				{"clock_out", "2025-11-10T11:00:00Z"},
			},
			hours: []string{"2", "1"},
			dates: []string{"2025-11-10", "2025-11-08"},
		},
		{
			name: "rounds half up",
			events: [][2]string{
				{"clock_in", "2025-11-10T09:00:00Z"},
				{"clock_out", "2025-11-10T09:00:18Z"},
			},
			hours: []string{"0.01"},
			dates: []string{"2025-11-10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []entity.PunchEvent
			for _, e := range tt.events {
				events = append(events, punch(t, entity.PunchType(e[0]), e[1]))
			}

			days := Aggregate(events)
			if len(days) != len(tt.hours) {
				t.Fatalf("Expected %d days, got %d", len(tt.hours), len(days))
			}

			for i, d := range days {
				if got := d.Hours().String(); got != tt.hours[i] {
					t.Errorf("day %d: expected %s hours, got %s", i, tt.hours[i], got)
				}
				if got := d.Date.String(); got != tt.dates[i] {
					t.Errorf("day %d: expected date %s, got %s", i, tt.dates[i], got)
				}
				if d.WorkedSeconds() < 0 {
					t.Errorf("day %d: negative worked seconds %v", i, d.WorkedSeconds())
				}
			}
		})
	}
}

func TestAggregate_EmptyIsDistinctFromZero(t *testing.T) {
	if days := Aggregate(nil); days != nil {
		t.Errorf("Expected nil for no events, got %v", days)
	}

	days := Aggregate([]entity.PunchEvent{punch(t, entity.ClockOut, "2025-11-10T09:00:00Z")})
	if len(days) != 1 || days[0].Worked != 0 {
		t.Errorf("Expected one zero day, got %+v", days)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	events := []entity.PunchEvent{
		punch(t, entity.ClockIn, "2025-11-10T09:00:00Z"),
		punch(t, entity.ClockIn, "2025-11-10T10:00:00Z"),
		punch(t, entity.PauseEnd, "2025-11-10T11:00:00Z"),
		punch(t, entity.ClockOut, "2025-11-11T11:00:00Z"),
	}

	first := Aggregate(events)
	second := Aggregate(events)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
}

func TestAggregate_UnsortedInput(t *testing.T) {
	sorted := []entity.PunchEvent{
		punch(t, entity.ClockIn, "2025-11-10T09:00:00Z"),
		punch(t, entity.PauseStart, "2025-11-10T12:00:00Z"),
		punch(t, entity.PauseEnd, "2025-11-10T12:30:00Z"),
		punch(t, entity.ClockOut, "2025-11-10T17:00:00Z"),
	}
	shuffled := []entity.PunchEvent{sorted[2], sorted[0], sorted[3], sorted[1]}
	input := append([]entity.PunchEvent(nil), shuffled...)

	want := Aggregate(sorted)
	got := Aggregate(shuffled)
	if !reflect.DeepEqual(want, got) {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	if !reflect.DeepEqual(shuffled, input) {
		t.Errorf("Aggregate reordered the caller's slice")
	}
}

func TestAggregate_SameInstantUsesCreatedAt(t *testing.T) {
	in := punch(t, entity.ClockIn, "2025-11-10T09:00:00Z")
	out := punch(t, entity.ClockOut, "2025-11-10T09:00:00Z")
	in.CreatedAt = in.Timestamp.Add(time.Second)
	late := punch(t, entity.ClockOut, "2025-11-10T10:00:00Z")

	// The ClockOut was created first, so it is an orphan and the ClockIn
	// session runs until 10:00.
	days := Aggregate([]entity.PunchEvent{in, out, late})
	if len(days) != 1 || days[0].Hours().String() != "1" {
		t.Errorf("Expected 1 hour, got %+v", days)
	}
}

func TestAggregate_Adjustments(t *testing.T) {
	events := []entity.PunchEvent{
		punch(t, entity.PauseEnd, "2025-11-10T08:00:00Z"),
		punch(t, entity.ClockIn, "2025-11-10T09:00:00Z"),
		punch(t, entity.ClockIn, "2025-11-10T10:00:00Z"),
		punch(t, entity.PunchType("lunch"), "2025-11-10T10:30:00Z"),
		punch(t, entity.PauseStart, "2025-11-10T11:00:00Z"),
	}

	days := Aggregate(events)
	if len(days) != 1 {
		t.Fatalf("Expected 1 day, got %d", len(days))
	}

	var rules []Rule
	for _, a := range days[0].Adjustments {
		rules = append(rules, a.Rule)
	}

	want := []Rule{RuleOrphanPauseEnd, RuleImplicitClose, RuleUnknownType, RuleResidualCredit}
	if !reflect.DeepEqual(rules, want) {
		t.Errorf("Expected %v, got %v", want, rules)
	}

	// 1h implicit session + 1h residual until the PauseStart.
	if got := days[0].Hours().String(); got != "2" {
		t.Errorf("Expected 2 hours, got %s", got)
	}
}

func TestAggregator_KeepOpenSession(t *testing.T) {
	events := []entity.PunchEvent{
		punch(t, entity.ClockIn, "2025-11-10T09:00:00Z"),
		punch(t, entity.ClockIn, "2025-11-10T10:00:00Z"),
		punch(t, entity.ClockOut, "2025-11-10T12:00:00Z"),
	}

	implicit := Aggregate(events)
	keep := NewAggregator(Policy{DuplicateClockIn: KeepOpenSession, CreditResidual: true}).Aggregate(events)

	if got := implicit[0].Hours().String(); got != "3" {
		t.Errorf("implicit close: expected 3 hours, got %s", got)
	}
	if got := keep[0].Hours().String(); got != "3" {
		t.Errorf("keep open: expected 3 hours, got %s", got)
	}
	if keep[0].Adjustments[0].Rule != RuleKeepOpenSession {
		t.Errorf("Expected keep_open_session adjustment, got %+v", keep[0].Adjustments)
	}
}

func TestAggregator_NoResidualCredit(t *testing.T) {
	events := []entity.PunchEvent{
		punch(t, entity.ClockIn, "2025-11-10T09:00:00Z"),
		punch(t, entity.PauseStart, "2025-11-10T12:00:00Z"),
	}

	days := NewAggregator(Policy{CreditResidual: false}).Aggregate(events)
	if days[0].Worked != 0 {
		t.Errorf("Expected no credit, got %v", days[0].Worked)
	}
	if len(days[0].Adjustments) != 0 {
		t.Errorf("Expected no adjustments, got %+v", days[0].Adjustments)
	}
}

func TestHours(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{-time.Hour, "0"},
		{0, "0"},
		{27 * time.Minute, "0.45"},
		{90 * time.Second, "0.03"},
		{7*time.Hour + 30*time.Minute, "7.5"},
	}

	for _, tt := range tests {
		if got := Hours(tt.in).String(); got != tt.want {
			t.Errorf("Hours(%v): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}
