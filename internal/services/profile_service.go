package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/ovumcalc/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrProfileNameTaken = errors.New("profile name taken")
)

type ProfileRepository interface {
	Create(profile *models.CycleProfile) error
	FindByID(profileID uint) (models.CycleProfile, error)
	FindByNormalizedName(name string) (models.CycleProfile, error)
	ExistsByNormalizedName(name string) (bool, error)
	UpdateCycleInputs(profileID uint, lastPeriodStart *time.Time, cycleLength float64, periodLength float64) error
	UpdatePinHash(profileID uint, pinHash string) error
	UpdateLanguage(profileID uint, language string) error
	Delete(profileID uint) error
}

type NewProfileInput struct {
	Name     string
	Pin      string
	Language string
	Inputs   CycleInputs
}

type ProfileService struct {
	profiles ProfileRepository
	hashCost int

	// unknownNameHash keeps a login for a missing profile as slow as a wrong PIN.
	unknownNameHash     []byte
	unknownNameHashOnce sync.Once
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles, hashCost: bcrypt.DefaultCost}
}

// WithHashCost lowers the bcrypt cost; tests use bcrypt.MinCost.
func (service *ProfileService) WithHashCost(cost int) *ProfileService {
	service.hashCost = cost
	return service
}

func (service *ProfileService) CreateProfile(input NewProfileInput, now time.Time) (models.CycleProfile, error) {
	name, err := ValidateProfileName(input.Name)
	if err != nil {
		return models.CycleProfile{}, err
	}
	pin, err := ValidateProfilePin(input.Pin)
	if err != nil {
		return models.CycleProfile{}, err
	}

	exists, err := service.profiles.ExistsByNormalizedName(NormalizeProfileName(name))
	if err != nil {
		return models.CycleProfile{}, err
	}
	if exists {
		return models.CycleProfile{}, ErrProfileNameTaken
	}

	pinHash, err := service.hashPin(pin)
	if err != nil {
		return models.CycleProfile{}, err
	}

	language := strings.TrimSpace(input.Language)
	if language == "" {
		language = models.DefaultLanguage
	}

	profile := models.CycleProfile{
		Name:      name,
		PinHash:   pinHash,
		Language:  language,
		CreatedAt: now.UTC(),
	}
	applyCycleInputs(&profile, input.Inputs)

	if err := service.profiles.Create(&profile); err != nil {
		// Another request may have taken the name after the existence check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.CycleProfile{}, ErrProfileNameTaken
		}
		return models.CycleProfile{}, err
	}
	return profile, nil
}

func (service *ProfileService) Authenticate(nameRaw string, pinRaw string) (models.CycleProfile, error) {
	name, pin, err := NormalizeProfileCredentials(nameRaw, pinRaw)
	if err != nil {
		return models.CycleProfile{}, err
	}

	profile, err := service.profiles.FindByNormalizedName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(service.unknownNamePinHash(), []byte(pin))
			return models.CycleProfile{}, ErrProfileCredentialsInvalid
		}
		return models.CycleProfile{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PinHash), []byte(pin)) != nil {
		return models.CycleProfile{}, ErrProfileCredentialsInvalid
	}
	return profile, nil
}

func (service *ProfileService) FindByID(profileID uint) (models.CycleProfile, error) {
	profile, err := service.profiles.FindByID(profileID)
	if err != nil {
		return models.CycleProfile{}, mapProfileLookupError(err)
	}
	return profile, nil
}

func (service *ProfileService) FindByName(nameRaw string) (models.CycleProfile, error) {
	name := NormalizeProfileName(nameRaw)
	if name == "" {
		return models.CycleProfile{}, ErrProfileNameInvalid
	}
	profile, err := service.profiles.FindByNormalizedName(name)
	if err != nil {
		return models.CycleProfile{}, mapProfileLookupError(err)
	}
	return profile, nil
}

// UpdateCycleInputs stores the inputs as given; incomplete inputs are allowed
// and simply cannot be derived yet.
func (service *ProfileService) UpdateCycleInputs(profileID uint, inputs CycleInputs) error {
	var profile models.CycleProfile
	applyCycleInputs(&profile, inputs)
	err := service.profiles.UpdateCycleInputs(profileID, profile.LastPeriodStart, profile.CycleLength, profile.PeriodLength)
	return mapProfileLookupError(err)
}

func (service *ProfileService) UpdateLanguage(profileID uint, language string) error {
	return mapProfileLookupError(service.profiles.UpdateLanguage(profileID, language))
}

func (service *ProfileService) ResetPin(profileID uint, pinRaw string) error {
	pin, err := ValidateProfilePin(pinRaw)
	if err != nil {
		return err
	}
	pinHash, err := service.hashPin(pin)
	if err != nil {
		return err
	}
	return mapProfileLookupError(service.profiles.UpdatePinHash(profileID, pinHash))
}

func (service *ProfileService) DeleteProfile(profileID uint) error {
	return mapProfileLookupError(service.profiles.Delete(profileID))
}

// ProfileCycleInputs rebuilds calculator inputs from a stored profile.
func ProfileCycleInputs(profile models.CycleProfile) CycleInputs {
	inputs := CycleInputs{
		CycleLengthDays:  profile.CycleLength,
		PeriodLengthDays: profile.PeriodLength,
	}
	if profile.LastPeriodStart != nil && !profile.LastPeriodStart.IsZero() {
		inputs.LastPeriodStart = CalendarDay(*profile.LastPeriodStart)
	}
	return inputs
}

func applyCycleInputs(profile *models.CycleProfile, inputs CycleInputs) {
	profile.LastPeriodStart = nil
	if !inputs.LastPeriodStart.IsZero() {
		stored := CalendarDay(inputs.LastPeriodStart)
		profile.LastPeriodStart = &stored
	}
	profile.CycleLength = 0
	if positiveLength(inputs.CycleLengthDays) {
		profile.CycleLength = inputs.CycleLengthDays
	}
	profile.PeriodLength = 0
	if positiveLength(inputs.PeriodLengthDays) {
		profile.PeriodLength = inputs.PeriodLengthDays
	}
}

func (service *ProfileService) unknownNamePinHash() []byte {
	service.unknownNameHashOnce.Do(func() {
		hash, err := service.hashPin("unknown-profile")
		if err != nil {
			return
		}
		service.unknownNameHash = []byte(hash)
	})
	return service.unknownNameHash
}

func (service *ProfileService) hashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), service.hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func mapProfileLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProfileNotFound
	}
	return err
}
