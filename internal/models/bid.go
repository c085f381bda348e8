package models

import (
	"time"

	"gorm.io/datatypes"
)

// Bid - коммерческое предложение поставщика на RFQ.
type Bid struct {
	BaseModel
	RFQID      string `gorm:"not null;index"`
	SupplierID string `gorm:"not null;index"`

	Price        float64    `gorm:"not null"`
	Currency     string     `gorm:"type:varchar(3);default:'KZT'"`
	DeliveryDate *time.Time // Обещанная дата поставки

	// Чек-лист соответствия требованиям: [{"requirement": "...", "met": true}, ...]
	Compliance datatypes.JSON `gorm:"type:jsonb"`
	// Сертификаты качества: ["ISO 9001", ...]
	Certifications datatypes.JSON `gorm:"type:jsonb"`

	// Заявленная поставщиком оценка устойчивости, 0-100
	SustainabilityScore *float64

	Status BidStatus `gorm:"type:varchar(20);default:'submitted'"`
	Notes  string

	// Relations
	RFQ *RFQ `gorm:"foreignKey:RFQID"`
}
