package report

import (
	"fmt"
	"log"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"timeclock/backend/internal/service/worktime"
)

const hoursSheet = "Hours"

func HoursExcel(days []worktime.DaySummary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Println("hours excel close error:", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", hoursSheet); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	for i, header := range hoursHeader {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(hoursSheet, cell, header); err != nil {
			return nil, errors.Wrap(err, "writing header")
		}
	}

	for i, d := range days {
		row := i + 2
		if err := f.SetCellValue(hoursSheet, fmt.Sprintf("A%d", row), d.Date.Format(dateLayout)); err != nil {
			return nil, errors.Wrap(err, "writing date")
		}
		// Numeric cell so spreadsheets can sum the column.
		if err := f.SetCellValue(hoursSheet, fmt.Sprintf("B%d", row), d.Hours().InexactFloat64()); err != nil {
			return nil, errors.Wrap(err, "writing hours")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "saving workbook")
	}

	return buf.Bytes(), nil
}
