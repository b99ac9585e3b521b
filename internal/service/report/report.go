// Package report renders worked-hours summaries and raw punch logs as
// downloadable documents. Columns of the hours reports map 1:1 to a
// summary's date and hours.
package report

import (
	"timeclock/backend/internal/service/worktime"
)

const dateLayout = "2006-01-02"

var hoursHeader = []string{"date", "hours"}

// Format is a supported hours report encoding.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
)

func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case PDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

// Hours renders days in the requested format, keeping their order.
func Hours(f Format, title string, days []worktime.DaySummary) ([]byte, error) {
	switch f {
	case XLSX:
		return HoursExcel(days)
	case PDF:
		return HoursPDF(title, days)
	default:
		return HoursCSV(days)
	}
}

func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case "", CSV:
		return CSV, true
	case XLSX, PDF:
		return Format(s), true
	}

	return "", false
}

func hoursRow(d worktime.DaySummary) []string {
	return []string{d.Date.Format(dateLayout), d.Hours().StringFixed(2)}
}
