package models

import (
	"time"
)

// RFQ - запрос котировок. Веса критериев хранятся прямо на RFQ,
// так что каждый запрос может иметь свою схему оценки.
type RFQ struct {
	ID          string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	BuyerID     string `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Category    string     `gorm:"type:varchar(100)"`
	Deadline    *time.Time // Срок подачи предложений
	Status      RFQStatus  `gorm:"type:varchar(20);default:'draft'"`

	// Схема оценки: доли в процентах, вместе должны давать 100
	WeightPrice          float64 `gorm:"default:30"`
	WeightDelivery       float64 `gorm:"default:20"`
	WeightQuality        float64 `gorm:"default:25"`
	WeightExperience     float64 `gorm:"default:15"`
	WeightSustainability float64 `gorm:"default:10"`

	Views     int
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Bids []Bid `gorm:"foreignKey:RFQID"`
}
