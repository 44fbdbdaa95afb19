package db

import (
	"time"

	"github.com/terraincognita07/ovumcalc/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) Create(profile *models.CycleProfile) error {
	return repo.database.Create(profile).Error
}

func (repo *ProfileRepository) FindByID(profileID uint) (models.CycleProfile, error) {
	var profile models.CycleProfile
	if err := repo.database.First(&profile, profileID).Error; err != nil {
		return models.CycleProfile{}, err
	}
	return profile, nil
}

func (repo *ProfileRepository) FindByNormalizedName(name string) (models.CycleProfile, error) {
	var profile models.CycleProfile
	if err := repo.database.Where("lower(trim(name)) = ?", name).First(&profile).Error; err != nil {
		return models.CycleProfile{}, err
	}
	return profile, nil
}

func (repo *ProfileRepository) ExistsByNormalizedName(name string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.CycleProfile{}).
		Where("lower(trim(name)) = ?", name).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *ProfileRepository) UpdateCycleInputs(profileID uint, lastPeriodStart *time.Time, cycleLength float64, periodLength float64) error {
	return repo.updateByID(profileID, map[string]any{
		"last_period_start": lastPeriodStart,
		"cycle_length":      cycleLength,
		"period_length":     periodLength,
	})
}

func (repo *ProfileRepository) UpdatePinHash(profileID uint, pinHash string) error {
	return repo.updateByID(profileID, map[string]any{"pin_hash": pinHash})
}

func (repo *ProfileRepository) UpdateLanguage(profileID uint, language string) error {
	return repo.updateByID(profileID, map[string]any{"language": language})
}

func (repo *ProfileRepository) Delete(profileID uint) error {
	result := repo.database.Delete(&models.CycleProfile{}, profileID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (repo *ProfileRepository) updateByID(profileID uint, updates map[string]any) error {
	result := repo.database.Model(&models.CycleProfile{}).Where("id = ?", profileID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
