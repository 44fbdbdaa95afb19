package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalc/internal/services"
)

const (
	errMessageInsufficientInput      = "insufficient input"
	errMessageInvalidLastPeriodStart = "invalid last period start"
	errMessageInvalidDate            = "invalid date"
	errMessageInvalidRange           = "invalid range"
	errMessageRangeTooLong           = "range too long"
	errMessageInvalidInput           = "invalid input"
	errMessageUnauthorized           = "unauthorized"
	errMessageInvalidCredentials     = "invalid credentials"
	errMessageTooManyAttempts        = "too many attempts"
	errMessageProfileNameInvalid     = "profile name invalid"
	errMessageProfilePinInvalid      = "profile pin invalid"
	errMessageProfileNameTaken       = "profile name taken"
	errMessageProfileNotFound        = "profile not found"
	errMessageNotFound               = "not found"
	errMessageInternal               = "internal error"
	errorKeyInternal                 = "error.internal"
)

var errorTranslationKeys = map[string]string{
	errMessageInsufficientInput:      "error.insufficient_input",
	errMessageInvalidLastPeriodStart: "error.invalid_last_period_start",
	errMessageInvalidDate:            "error.invalid_date",
	errMessageInvalidRange:           "error.invalid_range",
	errMessageRangeTooLong:           "error.range_too_long",
	errMessageInvalidInput:           "error.invalid_input",
	errMessageUnauthorized:           "error.unauthorized",
	errMessageInvalidCredentials:     "error.invalid_credentials",
	errMessageTooManyAttempts:        "error.too_many_attempts",
	errMessageProfileNameInvalid:     "error.profile_name_invalid",
	errMessageProfilePinInvalid:      "error.profile_pin_invalid",
	errMessageProfileNameTaken:       "error.profile_name_taken",
	errMessageProfileNotFound:        "error.profile_not_found",
	errMessageNotFound:               "error.not_found",
	errMessageInternal:               errorKeyInternal,
}

// apiError writes {"error": <stable message>, "message": <localized text>}.
func (handler *Handler) apiError(c *fiber.Ctx, status int, message string) error {
	payload := fiber.Map{"error": message}
	if key, ok := errorTranslationKeys[message]; ok {
		payload["message"] = handler.i18n.Translate(handler.currentLanguage(c), key)
	}
	return c.Status(status).JSON(payload)
}

// serviceError maps service errors to responses and logs anything unexpected.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInsufficientInput):
		return handler.apiError(c, fiber.StatusUnprocessableEntity, errMessageInsufficientInput)
	case errors.Is(err, services.ErrCycleStartDateInvalid):
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidLastPeriodStart)
	case errors.Is(err, services.ErrPhaseRangeInvalid):
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidRange)
	case errors.Is(err, services.ErrPhaseRangeTooLong):
		return handler.apiError(c, fiber.StatusBadRequest, errMessageRangeTooLong)
	case errors.Is(err, services.ErrProfileNameInvalid):
		return handler.apiError(c, fiber.StatusBadRequest, errMessageProfileNameInvalid)
	case errors.Is(err, services.ErrProfilePinInvalid):
		return handler.apiError(c, fiber.StatusBadRequest, errMessageProfilePinInvalid)
	case errors.Is(err, services.ErrProfileCredentialsInvalid):
		return handler.apiError(c, fiber.StatusUnauthorized, errMessageInvalidCredentials)
	case errors.Is(err, services.ErrProfileNameTaken):
		return handler.apiError(c, fiber.StatusConflict, errMessageProfileNameTaken)
	case errors.Is(err, services.ErrProfileNotFound):
		return handler.apiError(c, fiber.StatusNotFound, errMessageProfileNotFound)
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return handler.apiError(c, fiber.StatusInternalServerError, errMessageInternal)
	}
}
