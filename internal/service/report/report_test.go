package report

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/xuri/excelize/v2"

	"timeclock/backend/internal/entity"
	"timeclock/backend/internal/service/worktime"
)

func sampleDays() []worktime.DaySummary {
	return []worktime.DaySummary{
		{Date: date.Date{Time: time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC)}, Worked: 7*time.Hour + 30*time.Minute},
		{Date: date.Date{Time: time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)}, Worked: 20 * time.Minute},
	}
}

func TestHoursCSV(t *testing.T) {
	got, err := HoursCSV(sampleDays())
	if err != nil {
		t.Fatalf("HoursCSV failed: %v", err)
	}

	want := "date,hours\n2025-11-11,7.50\n2025-11-10,0.33\n"
	if string(got) != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEventsCSV(t *testing.T) {
	at := time.Date(2025, 11, 10, 9, 5, 0, 0, time.FixedZone("CET", 3600))
	got, err := EventsCSV([]entity.PunchEvent{{Type: entity.ClockIn, Timestamp: at}})
	if err != nil {
		t.Fatalf("EventsCSV failed: %v", err)
	}

	want := "date,type,time\n2025-11-10,clock_in,08:05:00\n"
	if string(got) != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestHoursExcel(t *testing.T) {
	body, err := HoursExcel(sampleDays())
	if err != nil {
		t.Fatalf("HoursExcel failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(hoursSheet)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}

	want := [][]string{
		{"date", "hours"},
		{"2025-11-11", "7.5"},
		{"2025-11-10", "0.33"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Expected %v, got %v", want, rows)
	}
}

func TestHoursPDF(t *testing.T) {
	body, err := HoursPDF("Worked hours", sampleDays())
	if err != nil {
		t.Fatalf("HoursPDF failed: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Errorf("Expected a PDF document, got prefix %q", body[:8])
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", CSV, true},
		{"csv", CSV, true},
		{"xlsx", XLSX, true},
		{"pdf", PDF, true},
		{"doc", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFormat(%q): expected %q,%v got %q,%v", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}
