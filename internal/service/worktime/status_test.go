package worktime

import (
	"testing"
	"time"

	"timeclock/backend/internal/entity"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		types []entity.PunchType
		want  State
	}{
		{"no events", nil, NoRecord},
		{"clock in", []entity.PunchType{entity.ClockIn}, ClockedIn},
		{"pause start", []entity.PunchType{entity.ClockIn, entity.PauseStart}, OnPause},
		{"pause end resumes", []entity.PunchType{entity.ClockIn, entity.PauseStart, entity.PauseEnd}, ClockedIn},
		{"clock out", []entity.PunchType{entity.ClockIn, entity.ClockOut}, ClockedOut},
		{"unknown latest is skipped", []entity.PunchType{entity.ClockOut, "lunch"}, ClockedOut},
		{"only unknown", []entity.PunchType{"lunch"}, NoRecord},
	}

	base := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []entity.PunchEvent
			for i, typ := range tt.types {
				ts := base.Add(time.Duration(i) * time.Hour)
				events = append(events, entity.PunchEvent{Type: typ, Timestamp: ts, CreatedAt: ts})
			}

			got := Resolve(events)
			if got.State != tt.want {
				t.Fatalf("Expected %s, got %s", tt.want, got.State)
			}
			if tt.want == NoRecord && got.AsOf != nil {
				t.Errorf("Expected nil as_of for no_record, got %v", got.AsOf)
			}
			if tt.want != NoRecord && got.AsOf == nil {
				t.Errorf("Expected as_of to be set")
			}
		})
	}
}

func TestResolve_TieBreak(t *testing.T) {
	at := time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)

	pause := entity.PunchEvent{Type: entity.PauseStart, Timestamp: at, CreatedAt: at.Add(time.Second)}
	out := entity.PunchEvent{Type: entity.ClockOut, Timestamp: at, CreatedAt: at}

	if got := Resolve([]entity.PunchEvent{pause, out}); got.State != OnPause {
		t.Errorf("Expected later created_at to win, got %s", got.State)
	}

	// Full tie: the later element wins.
	out.CreatedAt = pause.CreatedAt
	if got := Resolve([]entity.PunchEvent{pause, out}); got.State != ClockedOut {
		t.Errorf("Expected last element to win a full tie, got %s", got.State)
	}
}

func TestResolve_AsOfIsUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	at := time.Date(2025, 11, 10, 10, 0, 0, 0, loc)

	got := Resolve([]entity.PunchEvent{{Type: entity.ClockIn, Timestamp: at, CreatedAt: at}})
	if got.AsOf == nil || got.AsOf.Location() != time.UTC || !got.AsOf.Equal(at) {
		t.Errorf("Expected UTC as_of equal to %v, got %v", at, got.AsOf)
	}
}
