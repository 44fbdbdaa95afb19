package models

import "time"

const (
	DefaultLanguage = "en"

	MaxProfileNameLength = 64
)

// CycleProfile stores the current calculator inputs for one named person.
// Earlier values are overwritten, not kept.
type CycleProfile struct {
	ID              uint       `gorm:"primaryKey"`
	Name            string     `gorm:"uniqueIndex;not null"`
	PinHash         string     `gorm:"not null"`
	LastPeriodStart *time.Time `gorm:"type:date"`
	CycleLength     float64    `gorm:"not null;default:0"`
	PeriodLength    float64    `gorm:"not null;default:0"`
	Language        string     `gorm:"not null;default:en"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time
}
