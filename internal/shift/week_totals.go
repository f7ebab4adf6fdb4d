package shift

import (
	"time"

	shifterrors "github.com/kiwidressing/Maruschedule/internal/shift/errors"
)

const weekStartLayout = "2006-01-02"

// DayKeys lists the seven day slots of a week in display order.
// WeekStart always points at the "mon" slot.
var DayKeys = [7]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

func IsValidDayKey(key string) bool {
	for _, k := range DayKeys {
		if k == key {
			return true
		}
	}
	return false
}

func IsWeekday(key string) bool {
	return IsValidDayKey(key) && key != "sat" && key != "sun"
}

// DayHours holds the derived hours of both segments of one day.
type DayHours struct {
	LN float64
	DN float64
}

func (d DayHours) Total() float64 {
	return d.LN + d.DN
}

// WeekTotals buckets a week's hours the way the exported sheets show
// them. Grand is always derived, never stored independently.
type WeekTotals struct {
	Weekday  float64
	Saturday float64
	Sunday   float64
}

func (t WeekTotals) Grand() float64 {
	return t.Weekday + t.Saturday + t.Sunday
}

// ComputeWeekTotals folds per-day hours into the three buckets. Days
// absent from the map count as zero. Unknown day keys and negative
// hours are caller bugs and reported as errors rather than skipped.
func ComputeWeekTotals(days map[string]DayHours) (WeekTotals, error) {
	var totals WeekTotals

	for key, hours := range days {
		if !IsValidDayKey(key) {
			return WeekTotals{}, shifterrors.ErrInvalidDayKey
		}
		if hours.LN < 0 || hours.DN < 0 {
			return WeekTotals{}, shifterrors.ErrNegativeHours
		}

		switch key {
		case "sat":
			totals.Saturday += hours.Total()
		case "sun":
			totals.Sunday += hours.Total()
		default:
			totals.Weekday += hours.Total()
		}
	}

	return totals, nil
}

// ParseWeekStart parses a "YYYY-MM-DD" value and rolls it back to the
// Monday of its week, so clients may send any day of the week they
// are looking at.
func ParseWeekStart(value string) (time.Time, error) {
	day, err := time.Parse(weekStartLayout, value)
	if err != nil {
		return time.Time{}, shifterrors.ErrInvalidWeekStart
	}
	return NormalizeWeekStart(day), nil
}

func NormalizeWeekStart(day time.Time) time.Time {
	day = day.UTC().Truncate(24 * time.Hour)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

func FormatWeekStart(day time.Time) string {
	return day.Format(weekStartLayout)
}
