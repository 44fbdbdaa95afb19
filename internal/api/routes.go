package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Post("/windows", handler.DeriveWindows)
	api.Post("/classify", handler.ClassifyDate)
	api.Post("/calendar", handler.PhaseCalendar)

	profiles := api.Group("/profiles")
	profiles.Post("", handler.CreateProfile)
	profiles.Post("/login", handler.Login)

	me := profiles.Group("/me", handler.AuthRequired)
	me.Get("", handler.GetProfile)
	me.Patch("", handler.UpdateProfileLanguage)
	me.Delete("", handler.DeleteProfile)
	me.Put("/cycle", handler.UpdateProfileCycle)
	me.Get("/windows", handler.ProfileWindows)
	me.Get("/phase", handler.ProfilePhase)
	me.Get("/calendar", handler.ProfileCalendar)
	me.Get("/calendar.ics", handler.ProfileCalendarICS)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
