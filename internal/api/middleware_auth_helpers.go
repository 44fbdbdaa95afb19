package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/ovumcalc/internal/models"
	"github.com/terraincognita07/ovumcalc/internal/security"
)

const bearerPrefix = "bearer "

type authClaims struct {
	ProfileID uint `json:"pid"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildToken(profile *models.CycleProfile) (string, time.Time, error) {
	now := handler.now()
	expiresAt := now.Add(handler.tokenTTL)

	tokenID, err := security.TokenID()
	if err != nil {
		return "", time.Time{}, err
	}

	claims := authClaims{
		ProfileID: profile.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.FormatUint(uint64(profile.ID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(handler.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.CycleProfile, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return nil, errors.New("missing bearer token")
	}
	tokenValue := strings.TrimSpace(header[len(bearerPrefix):])

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(handler.now()) {
		return nil, errors.New("token expired")
	}

	handler.ensureDependencies()
	profile, err := handler.profileService.FindByID(claims.ProfileID)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
