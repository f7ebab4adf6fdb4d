package shift_test

import (
	"testing"
	"time"

	"github.com/kiwidressing/Maruschedule/internal/shift"

	"github.com/stretchr/testify/assert"
)

func TestSegmentHours(t *testing.T) {
	t.Run("plain day segment", func(t *testing.T) {
		hours, err := shift.SegmentHours("08:00", "16:00")
		assert.NoError(t, err)
		assert.Equal(t, 8.0, hours)
	})

	t.Run("half hours", func(t *testing.T) {
		hours, err := shift.SegmentHours("08:30", "12:15")
		assert.NoError(t, err)
		assert.InDelta(t, 3.75, hours, 1e-9)
	})

	t.Run("overnight segment crosses midnight", func(t *testing.T) {
		hours, err := shift.SegmentHours("22:00", "06:00")
		assert.NoError(t, err)
		assert.Equal(t, 8.0, hours)
	})

	t.Run("negative equal start and end", func(t *testing.T) {
		_, err := shift.SegmentHours("09:00", "09:00")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "equal")
	})

	t.Run("negative equal clocks spelled differently", func(t *testing.T) {
		_, err := shift.SegmentHours("1:00", "01:00")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "equal")
	})

	t.Run("negative malformed time", func(t *testing.T) {
		_, err := shift.SegmentHours("25:00", "06:00")
		assert.Error(t, err)

		_, err = shift.SegmentHours("8am", "4pm")
		assert.Error(t, err)
	})
}

func TestComputeWeekTotals(t *testing.T) {
	t.Run("buckets split weekday saturday sunday", func(t *testing.T) {
		days := map[string]shift.DayHours{
			"mon": {LN: 8},
			"tue": {LN: 8},
			"wed": {LN: 8},
			"thu": {LN: 8},
			"fri": {LN: 8},
			"sat": {LN: 4},
		}

		totals, err := shift.ComputeWeekTotals(days)

		assert.NoError(t, err)
		assert.Equal(t, 40.0, totals.Weekday)
		assert.Equal(t, 4.0, totals.Saturday)
		assert.Equal(t, 0.0, totals.Sunday)
		assert.Equal(t, 44.0, totals.Grand())
	})

	t.Run("empty week is zero", func(t *testing.T) {
		totals, err := shift.ComputeWeekTotals(nil)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, totals.Grand())
	})

	t.Run("grand always equals bucket sum", func(t *testing.T) {
		days := map[string]shift.DayHours{
			"mon": {LN: 7.5, DN: 2},
			"wed": {DN: 10},
			"sat": {LN: 6, DN: 6},
			"sun": {LN: 3.25},
		}

		totals, err := shift.ComputeWeekTotals(days)

		assert.NoError(t, err)
		assert.InDelta(t, totals.Weekday+totals.Saturday+totals.Sunday, totals.Grand(), 1e-9)
	})

	t.Run("deterministic for the same input", func(t *testing.T) {
		days := map[string]shift.DayHours{
			"mon": {LN: 1.25, DN: 2.5},
			"sun": {LN: 4},
		}

		first, err := shift.ComputeWeekTotals(days)
		assert.NoError(t, err)
		second, err := shift.ComputeWeekTotals(days)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("adding one segment raises exactly one bucket", func(t *testing.T) {
		days := map[string]shift.DayHours{
			"tue": {LN: 8},
		}
		before, err := shift.ComputeWeekTotals(days)
		assert.NoError(t, err)

		days["sun"] = shift.DayHours{DN: 5}
		after, err := shift.ComputeWeekTotals(days)
		assert.NoError(t, err)

		assert.Equal(t, before.Weekday, after.Weekday)
		assert.Equal(t, before.Saturday, after.Saturday)
		assert.Equal(t, before.Sunday+5, after.Sunday)
		assert.Equal(t, before.Grand()+5, after.Grand())
	})

	t.Run("negative unknown day key", func(t *testing.T) {
		_, err := shift.ComputeWeekTotals(map[string]shift.DayHours{"xyz": {LN: 1}})
		assert.Error(t, err)
	})

	t.Run("negative hours rejected", func(t *testing.T) {
		_, err := shift.ComputeWeekTotals(map[string]shift.DayHours{"mon": {LN: -1}})
		assert.Error(t, err)
	})
}

func TestParseWeekStart(t *testing.T) {
	t.Run("monday stays put", func(t *testing.T) {
		start, err := shift.ParseWeekStart("2026-08-24")
		assert.NoError(t, err)
		assert.Equal(t, "2026-08-24", shift.FormatWeekStart(start))
	})

	t.Run("mid week rolls back to monday", func(t *testing.T) {
		start, err := shift.ParseWeekStart("2026-08-27")
		assert.NoError(t, err)
		assert.Equal(t, "2026-08-24", shift.FormatWeekStart(start))
	})

	t.Run("sunday rolls back six days", func(t *testing.T) {
		start, err := shift.ParseWeekStart("2026-08-30")
		assert.NoError(t, err)
		assert.Equal(t, "2026-08-24", shift.FormatWeekStart(start))
	})

	t.Run("negative malformed date", func(t *testing.T) {
		_, err := shift.ParseWeekStart("24/08/2026")
		assert.Error(t, err)
	})
}

func TestNormalizeWeekStart(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)
		assert.Equal(t, monday, shift.NormalizeWeekStart(day), "offset %d", offset)
	}
}
