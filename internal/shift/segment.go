package shift

import (
	"time"

	shifterrors "github.com/kiwidressing/Maruschedule/internal/shift/errors"
)

const clockLayout = "15:04"

// SegmentHours derives the duration of one segment from its "HH:MM"
// start and end. An end at or before the start means the segment runs
// past midnight and gets a day added, except that an exactly equal
// pair is rejected as zero-length.
func SegmentHours(start, end string) (float64, error) {
	startClock, err := time.Parse(clockLayout, start)
	if err != nil {
		return 0, shifterrors.ErrInvalidTimeFormat
	}
	endClock, err := time.Parse(clockLayout, end)
	if err != nil {
		return 0, shifterrors.ErrInvalidTimeFormat
	}

	minutes := endClock.Sub(startClock).Minutes()
	if minutes == 0 {
		// Compare the parsed clocks, not the strings: "1:00" and
		// "01:00" are the same instant.
		return 0, shifterrors.ErrZeroLengthSegment
	}
	if minutes < 0 {
		minutes += 24 * 60
	}

	return minutes / 60, nil
}
