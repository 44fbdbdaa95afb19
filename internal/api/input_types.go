package api

import (
	"encoding/json"
	"strings"

	"github.com/terraincognita07/ovumcalc/internal/services"
)

// lengthValue accepts a JSON number or a numeric string, as HTML number
// inputs post strings while API clients send numbers.
type lengthValue string

func (value *lengthValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*value = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*value = lengthValue(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*value = lengthValue(number.String())
	return nil
}

type cycleInputsPayload struct {
	LastPeriodStart string      `json:"last_period_start" form:"last_period_start"`
	CycleLength     lengthValue `json:"cycle_length" form:"cycle_length"`
	PeriodLength    lengthValue `json:"period_length" form:"period_length"`
}

func (payload cycleInputsPayload) raw() services.RawCycleInputs {
	return services.RawCycleInputs{
		LastPeriodStart: payload.LastPeriodStart,
		CycleLength:     string(payload.CycleLength),
		PeriodLength:    string(payload.PeriodLength),
	}
}

type classifyPayload struct {
	cycleInputsPayload
	Date string `json:"date" form:"date"`
}

type calendarPayload struct {
	cycleInputsPayload
	From string `json:"from" form:"from"`
	To   string `json:"to" form:"to"`
}

type createProfilePayload struct {
	cycleInputsPayload
	Name     string `json:"name" form:"name"`
	Pin      string `json:"pin" form:"pin"`
	Language string `json:"language" form:"language"`
}

type loginPayload struct {
	Name string `json:"name" form:"name"`
	Pin  string `json:"pin" form:"pin"`
}

type profileLanguagePayload struct {
	Language string `json:"language" form:"language"`
}
