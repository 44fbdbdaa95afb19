package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalc/internal/services"
)

func (handler *Handler) DeriveWindows(c *fiber.Ctx) error {
	payload := cycleInputsPayload{}
	if err := parseRequestBody(c, &payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidInput)
	}

	windows, err := handler.deriveFromPayload(payload)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(buildWindowsResponse(windows))
}

func (handler *Handler) ClassifyDate(c *fiber.Ctx) error {
	payload := classifyPayload{}
	if err := parseRequestBody(c, &payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidInput)
	}

	windows, err := handler.deriveFromPayload(payload.cycleInputsPayload)
	if err != nil {
		return handler.serviceError(c, err)
	}

	day, err := services.ParseDay(strings.TrimSpace(payload.Date))
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidDate)
	}

	phase := services.ClassifyDay(day, windows)
	return c.JSON(handler.buildPhaseResponse(handler.currentLanguage(c), day, phase))
}

func (handler *Handler) PhaseCalendar(c *fiber.Ctx) error {
	payload := calendarPayload{}
	if err := parseRequestBody(c, &payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidInput)
	}

	windows, err := handler.deriveFromPayload(payload.cycleInputsPayload)
	if err != nil {
		return handler.serviceError(c, err)
	}

	requested, ok := handler.parsePhaseRange(payload.From, payload.To)
	if !ok {
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidDate)
	}
	return handler.respondPhaseCalendar(c, windows, requested)
}

func (handler *Handler) deriveFromPayload(payload cycleInputsPayload) (services.CycleWindows, error) {
	inputs, err := services.ParseCycleInputs(payload.raw())
	if err != nil {
		return services.CycleWindows{}, err
	}
	return services.DeriveCycleWindows(inputs)
}

func (handler *Handler) respondPhaseCalendar(c *fiber.Ctx, windows services.CycleWindows, requested services.PhaseRange) error {
	days, err := services.BuildPhaseCalendar(windows, requested, handler.maxCalendarDays)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(handler.buildCalendarResponse(handler.currentLanguage(c), days))
}
