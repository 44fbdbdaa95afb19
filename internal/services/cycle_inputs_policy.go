package services

import (
	"errors"
	"strconv"
	"strings"
)

var ErrCycleStartDateInvalid = errors.New("cycle start date invalid")

// RawCycleInputs holds the three values as a form or command line supplies them.
type RawCycleInputs struct {
	LastPeriodStart string
	CycleLength     string
	PeriodLength    string
}

// ParseCycleInputs turns raw values into CycleInputs. Blank or unparseable
// lengths are treated as not entered, the same as zero.
func ParseCycleInputs(raw RawCycleInputs) (CycleInputs, error) {
	inputs := CycleInputs{
		CycleLengthDays:  parseLength(raw.CycleLength),
		PeriodLengthDays: parseLength(raw.PeriodLength),
	}

	rawDate := strings.TrimSpace(raw.LastPeriodStart)
	if rawDate != "" {
		parsedDay, err := ParseDay(rawDate)
		if err != nil {
			return CycleInputs{}, ErrCycleStartDateInvalid
		}
		inputs.LastPeriodStart = parsedDay
	}

	if !inputs.Complete() {
		return inputs, ErrInsufficientInput
	}
	return inputs, nil
}

func parseLength(raw string) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !positiveLength(value) {
		return 0
	}
	return value
}

// FormatLength renders a stored length without a trailing ".0".
func FormatLength(value float64) string {
	if !positiveLength(value) {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
