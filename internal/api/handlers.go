package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/ovumcalc/internal/db"
	"github.com/terraincognita07/ovumcalc/internal/i18n"
	"github.com/terraincognita07/ovumcalc/internal/services"
	"gorm.io/gorm"
)

const defaultAuthTokenTTL = 7 * 24 * time.Hour

type Handler struct {
	db              *gorm.DB
	secretKey       []byte
	location        *time.Location
	tokenTTL        time.Duration
	maxCalendarDays int
	i18n            *i18n.Manager
	now             func() time.Time
	loginLimiter    *loginLimiter
	cookieSecure    bool

	repositories   *db.Repositories
	profileService *services.ProfileService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, i18nManager *i18n.Manager) (*Handler, error) {
	if location == nil {
		location = time.Local
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("secret key is required")
	}

	handler := &Handler{
		db:              database,
		secretKey:       []byte(secret),
		location:        location,
		tokenTTL:        defaultAuthTokenTTL,
		maxCalendarDays: services.DefaultMaxPhaseCalendarDays,
		i18n:            i18nManager,
		now:             time.Now,
		loginLimiter:    newLoginLimiter(loginAttemptsLimit, loginAttemptsWindow),
	}
	if database != nil {
		handler.withDependencies(database)
	}
	return handler, nil
}

func (handler *Handler) WithTokenTTL(ttl time.Duration) *Handler {
	if ttl > 0 {
		handler.tokenTTL = ttl
	}
	return handler
}

func (handler *Handler) WithMaxCalendarDays(days int) *Handler {
	if days > 0 {
		handler.maxCalendarDays = days
	}
	return handler
}

func (handler *Handler) WithCookieSecure(secure bool) *Handler {
	handler.cookieSecure = secure
	return handler
}

func (handler *Handler) today() time.Time {
	return services.DateAtLocation(handler.now(), handler.location)
}
