package models

import (
	"time"

	"gorm.io/datatypes"
)

// Evaluation - один запуск оценки по RFQ. Снимок весов хранится
// вместе с запуском, чтобы результаты читались даже после правки RFQ.
type Evaluation struct {
	BaseModel
	RFQID       string `gorm:"not null;index"`
	EvaluatorID string `gorm:"not null;index"`

	// Снимок весов на момент запуска
	CriteriaSnapshot datatypes.JSON `gorm:"type:jsonb"`

	BidsEvaluated int
	EvaluatedAt   time.Time `gorm:"not null"`

	// Relations
	Results []EvaluationResult `gorm:"foreignKey:EvaluationID"`
}

// EvaluationResult - строка итоговой таблицы для одного предложения.
type EvaluationResult struct {
	BaseModel
	EvaluationID string `gorm:"not null;index"`
	BidID        string `gorm:"not null;index"`
	SupplierID   string `gorm:"not null"`

	PriceScore          float64
	DeliveryScore       float64
	QualityScore        float64
	ExperienceScore     float64
	SustainabilityScore float64

	TotalScore     float64
	Rank           int
	Recommendation Recommendation `gorm:"type:varchar(20)"`
}
