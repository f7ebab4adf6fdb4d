package export_test

import (
	"testing"

	"github.com/kiwidressing/Maruschedule/internal/archive"
	"github.com/kiwidressing/Maruschedule/internal/export"
	"github.com/kiwidressing/Maruschedule/internal/shift"

	"github.com/stretchr/testify/assert"
)

func sampleWeek() shift.WeekResponse {
	return shift.WeekResponse{
		WeekStart: "2026-08-24",
		Days: []shift.DayResponse{
			{DayKey: "mon", LNStart: "09:00", LNEnd: "17:00", LNHours: 8, DayTotal: 8},
			{DayKey: "sat", DNStart: "22:00", DNEnd: "06:00", DNHours: 8, DayTotal: 8},
		},
		Totals: shift.TotalsResponse{
			WeekdayHours:  8,
			SaturdayHours: 8,
			TotalHours:    16,
		},
	}
}

func TestBuildWeekDocument(t *testing.T) {
	t.Run("always prints seven rows in week order", func(t *testing.T) {
		doc := export.BuildWeekDocument("Mika", nil, sampleWeek())

		assert.Len(t, doc.Rows, 7)
		assert.Equal(t, "Monday", doc.Rows[0].Label)
		assert.Equal(t, "Sunday", doc.Rows[6].Label)
		assert.Equal(t, 8.0, doc.Rows[0].LNHours)
		// Tuesday was never recorded and renders empty.
		assert.Equal(t, "Tuesday", doc.Rows[1].Label)
		assert.Zero(t, doc.Rows[1].DayTotal)
	})

	t.Run("carries the totals through unchanged", func(t *testing.T) {
		doc := export.BuildWeekDocument("Mika", nil, sampleWeek())

		assert.Equal(t, 8.0, doc.Totals.WeekdayHours)
		assert.Equal(t, 8.0, doc.Totals.SaturdayHours)
		assert.Equal(t, 16.0, doc.Totals.TotalHours)
	})
}

func TestBuildArchiveDocument(t *testing.T) {
	n := int64(12)
	arch := archive.ArchiveResponse{
		WeekStart: "2026-08-17",
		Label:     "mid august",
		Days:      sampleWeek().Days,
		Totals:    sampleWeek().Totals,
	}

	doc := export.BuildArchiveDocument("Mika", &n, arch)

	assert.Contains(t, doc.Title, "mid august")
	assert.Equal(t, "2026-08-17", doc.WeekStart)
	assert.Equal(t, int64(12), *doc.MemberNumber)
	assert.Len(t, doc.Rows, 7)
}

func TestBuildCompanyWeekDocument(t *testing.T) {
	n := int64(3)
	members := []shift.MemberWeekResponse{
		{
			UserID:       "u1",
			UserName:     "Anna",
			MemberNumber: &n,
			WeekStart:    "2026-08-24",
			Days:         sampleWeek().Days,
			Totals:       sampleWeek().Totals,
		},
		{
			UserID:    "u2",
			UserName:  "Ben",
			WeekStart: "2026-08-24",
		},
	}

	doc := export.BuildCompanyWeekDocument("2026-08-24", members)

	assert.Len(t, doc.Members, 2)
	assert.Equal(t, "Anna", doc.Members[0].EmployeeName)
	assert.Len(t, doc.Members[1].Rows, 7)
	assert.Equal(t, doc.GeneratedAt, doc.Members[0].GeneratedAt)
}

func TestRenderWeekXLSX(t *testing.T) {
	doc := export.BuildWeekDocument("Mika", nil, sampleWeek())

	data, err := export.RenderWeekXLSX(doc)

	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	// XLSX files are zip archives.
	assert.Equal(t, byte('P'), data[0])
	assert.Equal(t, byte('K'), data[1])
}

func TestRenderWeekPDF(t *testing.T) {
	doc := export.BuildWeekDocument("Mika", nil, sampleWeek())

	data, err := export.RenderWeekPDF(doc)

	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
