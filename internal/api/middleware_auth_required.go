package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	profile, err := handler.authenticateRequest(c)
	if err != nil {
		return handler.apiError(c, fiber.StatusUnauthorized, errMessageUnauthorized)
	}

	c.Locals(contextProfileKey, profile)
	handler.applyProfileLanguage(c, profile.Language)
	return c.Next()
}
