package services

import (
	"errors"
	"math"
	"time"
)

var ErrInsufficientInput = errors.New("insufficient input")

type PhaseLabel string

const (
	PhasePeriod          PhaseLabel = "period"
	PhaseOvulation       PhaseLabel = "ovulation"
	PhaseFertilityWindow PhaseLabel = "fertility_window"
	PhasePreOvulation    PhaseLabel = "pre_ovulation"
	PhasePostOvulation   PhaseLabel = "post_ovulation"
	PhaseNoEvent         PhaseLabel = "no_event"
)

const fertilityHalfWidthDays = 4

// AllPhaseLabels lists every label ClassifyDay can return, in rule order.
func AllPhaseLabels() []PhaseLabel {
	return []PhaseLabel{
		PhasePeriod,
		PhaseOvulation,
		PhaseFertilityWindow,
		PhasePreOvulation,
		PhasePostOvulation,
		PhaseNoEvent,
	}
}

// MessageKey is the locale key holding the human-readable label.
func (label PhaseLabel) MessageKey() string {
	return "phase." + string(label)
}

type CycleInputs struct {
	LastPeriodStart  time.Time
	CycleLengthDays  float64
	PeriodLengthDays float64
}

// Complete reports whether DeriveCycleWindows can run. Zero lengths count as
// missing, so "not entered yet" and "0 days" are indistinguishable.
func (inputs CycleInputs) Complete() bool {
	if inputs.LastPeriodStart.IsZero() {
		return false
	}
	return positiveLength(inputs.CycleLengthDays) && positiveLength(inputs.PeriodLengthDays)
}

// CycleWindows holds civil dates as produced by CalendarDay.
type CycleWindows struct {
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
	OvulationDate      time.Time `json:"ovulation_date"`
	FertilityStart     time.Time `json:"fertility_start"`
	FertilityEnd       time.Time `json:"fertility_end"`
	PreOvulationStart  time.Time `json:"pre_ovulation_start"`
	PreOvulationEnd    time.Time `json:"pre_ovulation_end"`
	PostOvulationStart time.Time `json:"post_ovulation_start"`
	PostOvulationEnd   time.Time `json:"post_ovulation_end"`
}

func DeriveCycleWindows(inputs CycleInputs) (CycleWindows, error) {
	if !inputs.Complete() {
		return CycleWindows{}, ErrInsufficientInput
	}

	cycleDays := wholeDays(inputs.CycleLengthDays)
	periodDays := wholeDays(inputs.PeriodLengthDays)
	ovulationOffset := int(math.Floor(inputs.CycleLengthDays / 2))

	periodStart := CalendarDay(inputs.LastPeriodStart).AddDate(0, 0, cycleDays)
	periodEnd := periodStart.AddDate(0, 0, periodDays)
	ovulationDate := periodStart.AddDate(0, 0, ovulationOffset)
	fertilityStart := ovulationDate.AddDate(0, 0, -fertilityHalfWidthDays)
	fertilityEnd := ovulationDate.AddDate(0, 0, fertilityHalfWidthDays)

	return CycleWindows{
		PeriodStart:        periodStart,
		PeriodEnd:          periodEnd,
		OvulationDate:      ovulationDate,
		FertilityStart:     fertilityStart,
		FertilityEnd:       fertilityEnd,
		PreOvulationStart:  periodEnd.AddDate(0, 0, 1),
		PreOvulationEnd:    fertilityStart.AddDate(0, 0, -1),
		PostOvulationStart: fertilityEnd.AddDate(0, 0, 1),
		PostOvulationEnd:   periodStart.AddDate(0, 0, -1),
	}, nil
}

// ClassifyDay returns the first matching phase for day. Windows must come from
// a successful DeriveCycleWindows call.
//
// The pre- and post-ovulation rules test open intervals whose bounds are one
// day apart, so they never match. They stay in place so that redefining those
// windows later changes classification without touching the rule order.
func ClassifyDay(day time.Time, windows CycleWindows) PhaseLabel {
	target := CalendarDay(day)

	switch {
	case betweenInclusive(target, windows.PeriodStart, windows.PeriodEnd):
		return PhasePeriod
	case target.Equal(windows.OvulationDate):
		return PhaseOvulation
	case betweenInclusive(target, windows.FertilityStart, windows.FertilityEnd):
		return PhaseFertilityWindow
	case betweenExclusive(target, windows.PeriodEnd, windows.PreOvulationStart):
		return PhasePreOvulation
	case betweenExclusive(target, windows.FertilityEnd, windows.PostOvulationStart):
		return PhasePostOvulation
	default:
		return PhaseNoEvent
	}
}

func positiveLength(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value > 0
}

// wholeDays truncates a fractional day count toward zero.
func wholeDays(value float64) int {
	return int(math.Trunc(value))
}

func betweenInclusive(day, start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

func betweenExclusive(day, start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return day.After(start) && day.Before(end)
}
