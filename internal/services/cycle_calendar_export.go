package services

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const calendarProductID = "-//ovumcalc//cycle windows//EN"

type calendarWindow struct {
	kind  string
	phase PhaseLabel
	start time.Time
	end   time.Time
}

// BuildWindowsCalendar renders the period, ovulation day and fertility window
// as all-day iCalendar events. label supplies the event summaries.
func BuildWindowsCalendar(windows CycleWindows, calendarName string, uidPrefix string, label func(PhaseLabel) string, now time.Time) string {
	if label == nil {
		label = func(phase PhaseLabel) string { return string(phase) }
	}
	uidPrefix = strings.TrimSpace(uidPrefix)
	if uidPrefix == "" {
		uidPrefix = "cycle"
	}

	calendar := ics.NewCalendar()
	calendar.SetMethod(ics.MethodPublish)
	calendar.SetProductId(calendarProductID)
	if name := strings.TrimSpace(calendarName); name != "" {
		calendar.SetName(name)
	}

	entries := []calendarWindow{
		{kind: "period", phase: PhasePeriod, start: windows.PeriodStart, end: windows.PeriodEnd},
		{kind: "fertility", phase: PhaseFertilityWindow, start: windows.FertilityStart, end: windows.FertilityEnd},
		{kind: "ovulation", phase: PhaseOvulation, start: windows.OvulationDate, end: windows.OvulationDate},
	}

	stamp := now.UTC()
	for _, entry := range entries {
		if entry.start.IsZero() || entry.end.IsZero() {
			continue
		}
		uid := fmt.Sprintf("%s-%s-%s@ovumcalc", uidPrefix, entry.kind, entry.start.Format("20060102"))
		event := calendar.AddEvent(uid)
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(entry.start)
		// DTEND of an all-day event is exclusive.
		event.SetAllDayEndAt(entry.end.AddDate(0, 0, 1))
		event.SetSummary(label(entry.phase))
	}

	return calendar.Serialize()
}
