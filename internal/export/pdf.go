package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Day", 28},
	{"LN start", 20}, {"LN end", 20}, {"LN hrs", 18},
	{"DN start", 20}, {"DN end", 20}, {"DN hrs", 18},
	{"Total", 18},
}

// RenderWeekPDF draws one week document on a single A4 page.
func RenderWeekPDF(doc WeekDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	drawWeekBlock(pdf, doc)
	drawFooter(pdf, doc.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderCompanyWeekPDF draws one page per member.
func RenderCompanyWeekPDF(doc CompanyWeekDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")

	for _, member := range doc.Members {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, doc.Title+" "+doc.WeekStart, "", 1, "L", false, 0, "")
		pdf.Ln(2)
		drawWeekBlock(pdf, member)
	}
	drawFooter(pdf, doc.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawWeekBlock(pdf *fpdf.Fpdf, doc WeekDocument) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, doc.Title, "", 1, "L", false, 0, "")

	employee := doc.EmployeeName
	if doc.MemberNumber != nil {
		employee = fmt.Sprintf("%s (no. %d)", doc.EmployeeName, *doc.MemberNumber)
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(95, 6, employee, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Week of "+doc.WeekStart, "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range doc.Rows {
		cells := []string{
			row.Label,
			row.LNStart, row.LNEnd, formatHours(row.LNHours),
			row.DNStart, row.DNEnd, formatHours(row.DNHours),
			formatHours(row.DayTotal),
		}
		for i, value := range cells {
			pdf.CellFormat(pdfColumns[i].width, 6, value, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 10)
	totals := fmt.Sprintf(
		"Weekday %s   Saturday %s   Sunday %s   Total %s",
		formatHours(doc.Totals.WeekdayHours),
		formatHours(doc.Totals.SaturdayHours),
		formatHours(doc.Totals.SundayHours),
		formatHours(doc.Totals.TotalHours),
	)
	pdf.CellFormat(0, 7, totals, "", 1, "L", false, 0, "")
}

func drawFooter(pdf *fpdf.Fpdf, generatedAt string) {
	pdf.SetY(-15)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, "Generated "+generatedAt, "", 0, "R", false, 0, "")
}

func formatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}
