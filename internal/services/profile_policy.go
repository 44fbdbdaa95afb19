package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/ovumcalc/internal/models"
)

const (
	MinProfilePinLength = 4
	MaxProfilePinLength = 64
)

var (
	ErrProfileNameInvalid        = errors.New("profile name invalid")
	ErrProfilePinInvalid         = errors.New("profile pin invalid")
	ErrProfileCredentialsInvalid = errors.New("profile credentials invalid")
)

// NormalizeProfileName is the form names are compared in.
func NormalizeProfileName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func ValidateProfileName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(name)
	if length == 0 || length > models.MaxProfileNameLength {
		return "", ErrProfileNameInvalid
	}
	return name, nil
}

func ValidateProfilePin(raw string) (string, error) {
	pin := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(pin)
	if length < MinProfilePinLength || length > MaxProfilePinLength {
		return "", ErrProfilePinInvalid
	}
	return pin, nil
}

func NormalizeProfileCredentials(nameRaw string, pinRaw string) (string, string, error) {
	name := NormalizeProfileName(nameRaw)
	pin := strings.TrimSpace(pinRaw)
	if name == "" || pin == "" {
		return "", "", ErrProfileCredentialsInvalid
	}
	return name, pin, nil
}
