package services

import "time"

const dateLayout = "2006-01-02"

// Calendar days are civil dates: midnight UTC carrying the wall-clock
// year, month and day. Day arithmetic never sees a DST transition, so a
// zone that skips midnight cannot shift a date onto the previous day.

// DateAtLocation returns the civil date value shows on a wall clock in location.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return CalendarDay(value.In(location))
}

// CalendarDay strips the time of day and keeps the wall-clock date.
func CalendarDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from start to end; negative when end is earlier.
func DaysBetween(start, end time.Time) int {
	return int(CalendarDay(end).Sub(CalendarDay(start)).Hours() / 24)
}

func FormatDay(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(dateLayout)
}

// ParseDay reads a YYYY-MM-DD date as a civil day.
func ParseDay(raw string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}
