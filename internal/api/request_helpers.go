package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ovumcalc/internal/services"
)

// parseRequestBody accepts JSON or form bodies. An empty body leaves payload
// untouched so missing inputs surface as insufficient input, not a parse error.
func parseRequestBody(c *fiber.Ctx, payload any) error {
	if len(strings.TrimSpace(string(c.Body()))) == 0 {
		return nil
	}
	return c.BodyParser(payload)
}

// parseOptionalDay returns the zero time for a blank value.
func (handler *Handler) parseOptionalDay(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, nil
	}
	return services.ParseDay(trimmed)
}

func (handler *Handler) parsePhaseRange(fromRaw string, toRaw string) (services.PhaseRange, bool) {
	from, err := handler.parseOptionalDay(fromRaw)
	if err != nil {
		return services.PhaseRange{}, false
	}
	to, err := handler.parseOptionalDay(toRaw)
	if err != nil {
		return services.PhaseRange{}, false
	}
	return services.PhaseRange{From: from, To: to}, true
}
