package api

import (
	"github.com/terraincognita07/ovumcalc/internal/db"
	"github.com/terraincognita07/ovumcalc/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.profileService = services.NewProfileService(handler.repositories.Profiles)
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.profileService == nil {
		handler.profileService = services.NewProfileService(handler.repositories.Profiles)
	}
}
