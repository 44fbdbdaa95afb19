package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalc/internal/services"
)

func (handler *Handler) ProfileWindows(c *fiber.Ctx) error {
	windows, err := handler.currentProfileWindows(c)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(buildWindowsResponse(windows))
}

// ProfilePhase classifies ?date=, or today in the server location.
func (handler *Handler) ProfilePhase(c *fiber.Ctx) error {
	windows, err := handler.currentProfileWindows(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	day := handler.today()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		day, err = services.ParseDay(raw)
		if err != nil {
			return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidDate)
		}
	}

	phase := services.ClassifyDay(day, windows)
	return c.JSON(handler.buildPhaseResponse(handler.currentLanguage(c), day, phase))
}

func (handler *Handler) ProfileCalendar(c *fiber.Ctx) error {
	windows, err := handler.currentProfileWindows(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	requested, ok := handler.parsePhaseRange(c.Query("from"), c.Query("to"))
	if !ok {
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidDate)
	}
	return handler.respondPhaseCalendar(c, windows, requested)
}

func (handler *Handler) ProfileCalendarICS(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, errMessageUnauthorized)
	}
	windows, err := handler.currentProfileWindows(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	language := handler.currentLanguage(c)
	label := func(phase services.PhaseLabel) string {
		return handler.phaseLabel(language, phase)
	}
	document := services.BuildWindowsCalendar(
		windows,
		handler.i18n.Translate(language, "calendar.name"),
		profileCalendarUIDPrefix(profile.ID),
		label,
		handler.now(),
	)

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cycle-windows.ics"`)
	return c.SendString(document)
}

func (handler *Handler) currentProfileWindows(c *fiber.Ctx) (services.CycleWindows, error) {
	profile, ok := currentProfile(c)
	if !ok {
		return services.CycleWindows{}, services.ErrProfileNotFound
	}
	return services.DeriveCycleWindows(services.ProfileCycleInputs(*profile))
}

func profileCalendarUIDPrefix(profileID uint) string {
	return "profile-" + strconv.FormatUint(uint64(profileID), 10)
}
