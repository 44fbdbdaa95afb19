package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalc/internal/models"
)

const (
	languageCookieName      = "ovumcalc_lang"
	languageQueryParam      = "lang"
	contextProfileKey       = "current_profile"
	contextLanguageKey      = "current_language"
	contextLanguageExplicit = "current_language_explicit"
)

func currentProfile(c *fiber.Ctx) (*models.CycleProfile, bool) {
	profile, ok := c.Locals(contextProfileKey).(*models.CycleProfile)
	return profile, ok && profile != nil
}

func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	if language, ok := c.Locals(contextLanguageKey).(string); ok && language != "" {
		return language
	}
	return handler.i18n.DefaultLanguage()
}
