package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Week"

var xlsxHeader = []string{
	"Day", "LN start", "LN end", "LN hours",
	"DN start", "DN end", "DN hours", "Day total",
}

// RenderWeekXLSX writes one week document to a single-sheet workbook.
func RenderWeekXLSX(doc WeekDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	row := 1
	if err := writeWeekBlock(f, doc, &row); err != nil {
		return nil, err
	}

	if err := setColumnWidths(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderCompanyWeekXLSX stacks one block per member on the same
// sheet, separated by a blank row.
func RenderCompanyWeekXLSX(doc CompanyWeekDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	row := 1
	if err := setCell(f, "A", row, doc.Title+" "+doc.WeekStart); err != nil {
		return nil, err
	}
	row += 2

	for _, member := range doc.Members {
		if err := writeWeekBlock(f, member, &row); err != nil {
			return nil, err
		}
		row++
	}

	if err := setColumnWidths(f); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeWeekBlock(f *excelize.File, doc WeekDocument, row *int) error {
	employee := doc.EmployeeName
	if doc.MemberNumber != nil {
		employee = fmt.Sprintf("%s (no. %d)", doc.EmployeeName, *doc.MemberNumber)
	}

	if err := setCell(f, "A", *row, doc.Title); err != nil {
		return err
	}
	*row++
	if err := setCell(f, "A", *row, employee); err != nil {
		return err
	}
	if err := setCell(f, "C", *row, "Week of "+doc.WeekStart); err != nil {
		return err
	}
	*row++

	for col, title := range xlsxHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, *row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return err
		}
	}
	*row++

	for _, dayRow := range doc.Rows {
		values := []any{
			dayRow.Label,
			dayRow.LNStart, dayRow.LNEnd, dayRow.LNHours,
			dayRow.DNStart, dayRow.DNEnd, dayRow.DNHours,
			dayRow.DayTotal,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, *row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
		*row++
	}

	totals := [][2]any{
		{"Weekday hours", doc.Totals.WeekdayHours},
		{"Saturday hours", doc.Totals.SaturdayHours},
		{"Sunday hours", doc.Totals.SundayHours},
		{"Total hours", doc.Totals.TotalHours},
	}
	for _, pair := range totals {
		if err := setCell(f, "A", *row, pair[0]); err != nil {
			return err
		}
		if err := setCell(f, "B", *row, pair[1]); err != nil {
			return err
		}
		*row++
	}
	return nil
}

func setCell(f *excelize.File, col string, row int, value any) error {
	return f.SetCellValue(sheetName, col+strconv.Itoa(row), value)
}

func setColumnWidths(f *excelize.File) error {
	if err := f.SetColWidth(sheetName, "A", "A", 18); err != nil {
		return err
	}
	return f.SetColWidth(sheetName, "B", "H", 10)
}
