package api

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalc/internal/models"
	"github.com/terraincognita07/ovumcalc/internal/services"
)

func (handler *Handler) CreateProfile(c *fiber.Ctx) error {
	handler.ensureDependencies()

	payload := createProfilePayload{}
	if err := parseRequestBody(c, &payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidInput)
	}

	inputs, err := handler.parseStoredInputs(payload.cycleInputsPayload)
	if err != nil {
		return handler.serviceError(c, err)
	}

	language := handler.currentLanguage(c)
	if strings.TrimSpace(payload.Language) != "" {
		language = handler.i18n.NormalizeLanguage(payload.Language)
	}

	profile, err := handler.profileService.CreateProfile(services.NewProfileInput{
		Name:     payload.Name,
		Pin:      payload.Pin,
		Language: language,
		Inputs:   inputs,
	}, handler.now())
	if err != nil {
		return handler.serviceError(c, err)
	}

	return handler.respondWithToken(c, fiber.StatusCreated, profile)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	handler.ensureDependencies()

	payload := loginPayload{}
	if err := parseRequestBody(c, &payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidInput)
	}

	limiterKey := loginLimiterKey(c, payload.Name)
	now := handler.now()
	if locked, retryAfter := handler.loginLimiter.locked(limiterKey, now); locked {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		return handler.apiError(c, fiber.StatusTooManyRequests, errMessageTooManyAttempts)
	}

	profile, err := handler.profileService.Authenticate(payload.Name, payload.Pin)
	if err != nil {
		if errors.Is(err, services.ErrProfileCredentialsInvalid) {
			handler.loginLimiter.recordFailure(limiterKey, now)
		}
		return handler.serviceError(c, err)
	}

	handler.loginLimiter.clear(limiterKey)
	return handler.respondWithToken(c, fiber.StatusOK, profile)
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, errMessageUnauthorized)
	}
	return c.JSON(buildProfileResponse(*profile))
}

func (handler *Handler) UpdateProfileLanguage(c *fiber.Ctx) error {
	handler.ensureDependencies()
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, errMessageUnauthorized)
	}

	payload := profileLanguagePayload{}
	if err := parseRequestBody(c, &payload); err != nil || strings.TrimSpace(payload.Language) == "" {
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidInput)
	}

	language := handler.i18n.NormalizeLanguage(payload.Language)
	if err := handler.profileService.UpdateLanguage(profile.ID, language); err != nil {
		return handler.serviceError(c, err)
	}
	profile.Language = language
	c.Locals(contextLanguageKey, language)
	return c.JSON(buildProfileResponse(*profile))
}

func (handler *Handler) UpdateProfileCycle(c *fiber.Ctx) error {
	handler.ensureDependencies()
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, errMessageUnauthorized)
	}

	payload := cycleInputsPayload{}
	if err := parseRequestBody(c, &payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, errMessageInvalidInput)
	}

	inputs, err := handler.parseStoredInputs(payload)
	if err != nil {
		return handler.serviceError(c, err)
	}
	if err := handler.profileService.UpdateCycleInputs(profile.ID, inputs); err != nil {
		return handler.serviceError(c, err)
	}

	updated, err := handler.profileService.FindByID(profile.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(buildProfileResponse(updated))
}

func (handler *Handler) DeleteProfile(c *fiber.Ctx) error {
	handler.ensureDependencies()
	profile, ok := currentProfile(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, errMessageUnauthorized)
	}

	if err := handler.profileService.DeleteProfile(profile.ID); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseStoredInputs accepts incomplete inputs, which a profile may hold until
// every value is known. Only a malformed date is rejected.
func (handler *Handler) parseStoredInputs(payload cycleInputsPayload) (services.CycleInputs, error) {
	inputs, err := services.ParseCycleInputs(payload.raw())
	if err != nil && !errors.Is(err, services.ErrInsufficientInput) {
		return services.CycleInputs{}, err
	}
	return inputs, nil
}

func (handler *Handler) respondWithToken(c *fiber.Ctx, status int, profile models.CycleProfile) error {
	token, expiresAt, err := handler.buildToken(&profile)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(status).JSON(tokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		Profile:   buildProfileResponse(profile),
	})
}
