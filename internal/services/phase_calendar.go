package services

import (
	"errors"
	"time"
)

const DefaultMaxPhaseCalendarDays = 366

var (
	ErrPhaseRangeInvalid = errors.New("phase range invalid")
	ErrPhaseRangeTooLong = errors.New("phase range too long")
)

type PhaseDay struct {
	Date  time.Time
	Phase PhaseLabel
}

// PhaseRange bounds a phase calendar. Zero bounds fall back to the derived
// period start and post-ovulation start.
type PhaseRange struct {
	From time.Time
	To   time.Time
}

func ResolvePhaseRange(requested PhaseRange, windows CycleWindows, maxDays int) (PhaseRange, error) {
	if maxDays <= 0 {
		maxDays = DefaultMaxPhaseCalendarDays
	}

	resolved := PhaseRange{From: windows.PeriodStart, To: windows.PostOvulationStart}
	if !requested.From.IsZero() {
		resolved.From = CalendarDay(requested.From)
	}
	if !requested.To.IsZero() {
		resolved.To = CalendarDay(requested.To)
	}

	if resolved.To.Before(resolved.From) {
		return PhaseRange{}, ErrPhaseRangeInvalid
	}
	if DaysBetween(resolved.From, resolved.To)+1 > maxDays {
		return PhaseRange{}, ErrPhaseRangeTooLong
	}
	return resolved, nil
}

func BuildPhaseCalendar(windows CycleWindows, requested PhaseRange, maxDays int) ([]PhaseDay, error) {
	resolved, err := ResolvePhaseRange(requested, windows, maxDays)
	if err != nil {
		return nil, err
	}

	days := make([]PhaseDay, 0, DaysBetween(resolved.From, resolved.To)+1)
	for cursor := resolved.From; !cursor.After(resolved.To); cursor = cursor.AddDate(0, 0, 1) {
		days = append(days, PhaseDay{Date: cursor, Phase: ClassifyDay(cursor, windows)})
	}
	return days, nil
}

// CountPhases tallies how many days of the calendar fall in each phase.
func CountPhases(days []PhaseDay) map[PhaseLabel]int {
	counts := make(map[PhaseLabel]int, len(AllPhaseLabels()))
	for _, day := range days {
		counts[day.Phase]++
	}
	return counts
}
