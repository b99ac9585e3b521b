package report

import (
	"bytes"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"

	"timeclock/backend/internal/service/worktime"
)

func HoursPDF(title string, days []worktime.DaySummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(50, 8, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Hours", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, d := range days {
		row := hoursRow(d)
		pdf.CellFormat(50, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, row[1], "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering pdf")
	}

	return buf.Bytes(), nil
}
