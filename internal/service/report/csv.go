package report

import (
	"bytes"
	"encoding/csv"

	"github.com/pkg/errors"

	"timeclock/backend/internal/entity"
	"timeclock/backend/internal/service/worktime"
)

func HoursCSV(days []worktime.DaySummary) ([]byte, error) {
	rows := make([][]string, 0, len(days)+1)
	rows = append(rows, hoursHeader)
	for _, d := range days {
		rows = append(rows, hoursRow(d))
	}

	return writeCSV(rows)
}

// EventsCSV lists raw punches as date,type,time in UTC.
func EventsCSV(events []entity.PunchEvent) ([]byte, error) {
	rows := make([][]string, 0, len(events)+1)
	rows = append(rows, []string{"date", "type", "time"})
	for _, e := range events {
		ts := e.Timestamp.UTC()
		rows = append(rows, []string{ts.Format(dateLayout), string(e.Type), ts.Format("15:04:05")})
	}

	return writeCSV(rows)
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, errors.Wrap(err, "writing csv")
	}

	return buf.Bytes(), nil
}
