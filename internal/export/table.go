package export

import (
	"time"

	"github.com/kiwidressing/Maruschedule/internal/archive"
	"github.com/kiwidressing/Maruschedule/internal/shift"
)

// dayLabels maps the stored day keys to the printed row headers, in
// week order.
var dayLabels = map[string]string{
	"mon": "Monday",
	"tue": "Tuesday",
	"wed": "Wednesday",
	"thu": "Thursday",
	"fri": "Friday",
	"sat": "Saturday",
	"sun": "Sunday",
}

// DayRow is one printed line of the week table.
type DayRow struct {
	Label    string
	LNStart  string
	LNEnd    string
	LNHours  float64
	DNStart  string
	DNEnd    string
	DNHours  float64
	DayTotal float64
}

// WeekDocument is the render-ready form of one person's week. Both
// the XLSX and the PDF renderer consume it, so the two outputs always
// agree on content.
type WeekDocument struct {
	Title        string
	EmployeeName string
	MemberNumber *int64
	WeekStart    string
	Rows         []DayRow
	Totals       shift.TotalsResponse
	GeneratedAt  time.Time
}

// CompanyWeekDocument is a week document per member, under a shared
// header.
type CompanyWeekDocument struct {
	Title       string
	WeekStart   string
	Members     []WeekDocument
	GeneratedAt time.Time
}

func buildRows(days []shift.DayResponse) []DayRow {
	byKey := make(map[string]shift.DayResponse, len(days))
	for _, day := range days {
		byKey[day.DayKey] = day
	}

	rows := make([]DayRow, 0, len(shift.DayKeys))
	for _, key := range shift.DayKeys {
		day := byKey[key]
		rows = append(rows, DayRow{
			Label:    dayLabels[key],
			LNStart:  day.LNStart,
			LNEnd:    day.LNEnd,
			LNHours:  day.LNHours,
			DNStart:  day.DNStart,
			DNEnd:    day.DNEnd,
			DNHours:  day.DNHours,
			DayTotal: day.DayTotal,
		})
	}
	return rows
}

func BuildWeekDocument(name string, memberNumber *int64, week shift.WeekResponse) WeekDocument {
	return WeekDocument{
		Title:        "Weekly shift sheet",
		EmployeeName: name,
		MemberNumber: memberNumber,
		WeekStart:    week.WeekStart,
		Rows:         buildRows(week.Days),
		Totals:       week.Totals,
		GeneratedAt:  time.Now().UTC(),
	}
}

func BuildArchiveDocument(name string, memberNumber *int64, arch archive.ArchiveResponse) WeekDocument {
	title := "Archived shift sheet"
	if arch.Label != "" {
		title = title + " - " + arch.Label
	}
	return WeekDocument{
		Title:        title,
		EmployeeName: name,
		MemberNumber: memberNumber,
		WeekStart:    arch.WeekStart,
		Rows:         buildRows(arch.Days),
		Totals:       arch.Totals,
		GeneratedAt:  time.Now().UTC(),
	}
}

func BuildCompanyWeekDocument(weekStart string, members []shift.MemberWeekResponse) CompanyWeekDocument {
	doc := CompanyWeekDocument{
		Title:       "Company week sheet",
		WeekStart:   weekStart,
		Members:     make([]WeekDocument, 0, len(members)),
		GeneratedAt: time.Now().UTC(),
	}
	for _, m := range members {
		doc.Members = append(doc.Members, WeekDocument{
			Title:        doc.Title,
			EmployeeName: m.UserName,
			MemberNumber: m.MemberNumber,
			WeekStart:    m.WeekStart,
			Rows:         buildRows(m.Days),
			Totals:       m.Totals,
			GeneratedAt:  doc.GeneratedAt,
		})
	}
	return doc
}
