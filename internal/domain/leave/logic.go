package leave

import (
	"errors"
	"math"
	"time"
)

const MessageEndBeforeStart = "End date cannot be before start date."

var ErrEndBeforeStart = errors.New(MessageEndBeforeStart)

// CalculateDays returns the inclusive number of calendar days between start
// and end. Times of day are ignored.
func CalculateDays(start, end time.Time) (int, error) {
	start = calendarDay(start)
	end = calendarDay(end)
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1, nil
}

// FiscalYear buckets a date into the balance year it draws from.
func FiscalYear(day time.Time) int {
	return day.Year()
}

// OnLeave reports whether day falls inside the request's date range.
func (r Request) OnLeave(day time.Time) bool {
	day = calendarDay(day)
	return !day.Before(calendarDay(r.StartDate)) && !day.After(calendarDay(r.EndDate))
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
