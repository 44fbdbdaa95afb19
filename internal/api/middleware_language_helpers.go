package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LanguageMiddleware picks the response language from ?lang=, then the
// language cookie, then Accept-Language. An explicit ?lang= is remembered.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	language := handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	if cookieLanguage := c.Cookies(languageCookieName); cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	}

	explicit := false
	if queryLanguage := strings.TrimSpace(c.Query(languageQueryParam)); queryLanguage != "" {
		language = handler.i18n.NormalizeLanguage(queryLanguage)
		explicit = true
		if c.Cookies(languageCookieName) != language {
			handler.setLanguageCookie(c, language)
		}
	}

	c.Locals(contextLanguageKey, language)
	c.Locals(contextLanguageExplicit, explicit)
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().AddDate(1, 0, 0),
	})
}

// applyProfileLanguage lets a stored profile language win unless the request
// named one explicitly.
func (handler *Handler) applyProfileLanguage(c *fiber.Ctx, profileLanguage string) {
	if explicit, _ := c.Locals(contextLanguageExplicit).(bool); explicit {
		return
	}
	if strings.TrimSpace(profileLanguage) == "" {
		return
	}
	c.Locals(contextLanguageKey, handler.i18n.NormalizeLanguage(profileLanguage))
}
