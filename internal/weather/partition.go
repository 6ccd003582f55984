package weather

import (
	"fmt"
	"time"

	"github.com/alexivanou/weathertrack/internal/model"
)

const (
	// DateLayout is the wire format for calendar dates
	DateLayout  = "2006-01-02"
	maxSpanDays = 31
)

// DateSpan is an inclusive calendar-date span
type DateSpan struct {
	Start string
	End   string
}

// Partition is the result of splitting a date span at the archive/forecast
// boundary. Past covers days strictly before today, PresentFuture covers
// today onward; either may be nil, never both.
type Partition struct {
	Past          *DateSpan
	PresentFuture *DateSpan
}

// ValidateRange checks that both dates are real calendar dates, that the
// range is not inverted and that the inclusive span does not exceed 31 days.
// It runs before any network or storage I/O.
func ValidateRange(startDate, endDate string) error {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return fmt.Errorf("%w: invalid date format %q, use YYYY-MM-DD", model.ErrInvalidRange, startDate)
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return fmt.Errorf("%w: invalid date format %q, use YYYY-MM-DD", model.ErrInvalidRange, endDate)
	}
	if start.After(end) {
		return fmt.Errorf("%w: startDate must be before or equal to endDate", model.ErrInvalidRange)
	}
	if DaysInclusive(startDate, endDate) > maxSpanDays {
		return fmt.Errorf("%w: date range too large (max %d days)", model.ErrInvalidRange, maxSpanDays)
	}
	return nil
}

// DaysInclusive returns the number of calendar days the span covers,
// counting both endpoints. Inputs must be valid YYYY-MM-DD strings.
func DaysInclusive(startDate, endDate string) int {
	start, _ := time.Parse(DateLayout, startDate)
	end, _ := time.Parse(DateLayout, endDate)
	return int(end.Sub(start).Hours()/24) + 1
}

// SplitRange partitions [startDate, endDate] relative to today. The ISO
// date format orders lexicographically, so plain string comparison is the
// chronological comparison. Days before today belong to the archive source,
// today and later to the forecast source; the two sub-spans are contiguous
// and no day appears in both.
func SplitRange(startDate, endDate, today string) Partition {
	if endDate < today {
		return Partition{Past: &DateSpan{Start: startDate, End: endDate}}
	}
	if startDate >= today {
		return Partition{PresentFuture: &DateSpan{Start: startDate, End: endDate}}
	}
	return Partition{
		Past:          &DateSpan{Start: startDate, End: previousDay(today)},
		PresentFuture: &DateSpan{Start: today, End: endDate},
	}
}

func previousDay(date string) string {
	d, _ := time.Parse(DateLayout, date)
	return d.AddDate(0, 0, -1).Format(DateLayout)
}
