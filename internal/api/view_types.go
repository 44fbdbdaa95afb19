package api

import (
	"time"

	"github.com/terraincognita07/ovumcalc/internal/models"
	"github.com/terraincognita07/ovumcalc/internal/services"
)

type windowsResponse struct {
	PeriodStart        string `json:"period_start"`
	PeriodEnd          string `json:"period_end"`
	OvulationDate      string `json:"ovulation_date"`
	FertilityStart     string `json:"fertility_start"`
	FertilityEnd       string `json:"fertility_end"`
	PreOvulationStart  string `json:"pre_ovulation_start"`
	PreOvulationEnd    string `json:"pre_ovulation_end"`
	PostOvulationStart string `json:"post_ovulation_start"`
	PostOvulationEnd   string `json:"post_ovulation_end"`
}

type phaseResponse struct {
	Date        string `json:"date"`
	Phase       string `json:"phase"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type phaseDayResponse struct {
	Date  string `json:"date"`
	Phase string `json:"phase"`
	Label string `json:"label"`
}

type calendarResponse struct {
	From   string             `json:"from"`
	To     string             `json:"to"`
	Days   []phaseDayResponse `json:"days"`
	Counts map[string]int     `json:"counts"`
}

type profileResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Language        string  `json:"language"`
	LastPeriodStart string  `json:"last_period_start,omitempty"`
	CycleLength     float64 `json:"cycle_length,omitempty"`
	PeriodLength    float64 `json:"period_length,omitempty"`
	HasCycleInputs  bool    `json:"has_cycle_inputs"`
}

type tokenResponse struct {
	Token     string          `json:"token"`
	ExpiresAt string          `json:"expires_at"`
	Profile   profileResponse `json:"profile"`
}

func buildWindowsResponse(windows services.CycleWindows) windowsResponse {
	return windowsResponse{
		PeriodStart:        services.FormatDay(windows.PeriodStart),
		PeriodEnd:          services.FormatDay(windows.PeriodEnd),
		OvulationDate:      services.FormatDay(windows.OvulationDate),
		FertilityStart:     services.FormatDay(windows.FertilityStart),
		FertilityEnd:       services.FormatDay(windows.FertilityEnd),
		PreOvulationStart:  services.FormatDay(windows.PreOvulationStart),
		PreOvulationEnd:    services.FormatDay(windows.PreOvulationEnd),
		PostOvulationStart: services.FormatDay(windows.PostOvulationStart),
		PostOvulationEnd:   services.FormatDay(windows.PostOvulationEnd),
	}
}

func (handler *Handler) phaseLabel(language string, phase services.PhaseLabel) string {
	return handler.i18n.Translate(language, phase.MessageKey())
}

func (handler *Handler) buildPhaseResponse(language string, day time.Time, phase services.PhaseLabel) phaseResponse {
	label := handler.phaseLabel(language, phase)
	return phaseResponse{
		Date:        services.FormatDay(day),
		Phase:       string(phase),
		Label:       label,
		Description: handler.i18n.Translatef(language, "phase.description", label),
	}
}

func (handler *Handler) buildCalendarResponse(language string, days []services.PhaseDay) calendarResponse {
	response := calendarResponse{
		Days:   make([]phaseDayResponse, 0, len(days)),
		Counts: make(map[string]int, len(services.AllPhaseLabels())),
	}
	for _, phase := range services.AllPhaseLabels() {
		response.Counts[string(phase)] = 0
	}
	for phase, count := range services.CountPhases(days) {
		response.Counts[string(phase)] = count
	}
	for _, day := range days {
		response.Days = append(response.Days, phaseDayResponse{
			Date:  services.FormatDay(day.Date),
			Phase: string(day.Phase),
			Label: handler.phaseLabel(language, day.Phase),
		})
	}
	if len(days) > 0 {
		response.From = services.FormatDay(days[0].Date)
		response.To = services.FormatDay(days[len(days)-1].Date)
	}
	return response
}

func buildProfileResponse(profile models.CycleProfile) profileResponse {
	response := profileResponse{
		ID:           profile.ID,
		Name:         profile.Name,
		Language:     profile.Language,
		CycleLength:  profile.CycleLength,
		PeriodLength: profile.PeriodLength,
	}
	if profile.LastPeriodStart != nil {
		response.LastPeriodStart = services.FormatDay(*profile.LastPeriodStart)
	}
	response.HasCycleInputs = services.ProfileCycleInputs(profile).Complete()
	return response
}
