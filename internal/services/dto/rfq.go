package dto

import (
	"time"

	"zakup_backend/internal/models"
)

// --- RFQ Requests ---

type CreateRFQRequest struct {
	BuyerID     string     `json:"buyer_id" validate:"-"` // Устанавливается сервером
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	Category    string     `json:"category" validate:"omitempty,max=100"`
	Deadline    *time.Time `json:"deadline"`

	// Веса критериев; если все нулевые, применяется схема по умолчанию
	Criteria *CriteriaDTO `json:"criteria" validate:"omitempty"`
}

type UpdateRFQRequest struct {
	Title       *string      `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string      `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category    *string      `json:"category,omitempty" validate:"omitempty,max=100"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	Criteria    *CriteriaDTO `json:"criteria,omitempty" validate:"omitempty"`
}

// CriteriaDTO - веса критериев оценки в процентах
type CriteriaDTO struct {
	PriceWeight          float64 `json:"price_weight" validate:"min=0,max=100"`
	DeliveryWeight       float64 `json:"delivery_weight" validate:"min=0,max=100"`
	QualityWeight        float64 `json:"quality_weight" validate:"min=0,max=100"`
	ExperienceWeight     float64 `json:"experience_weight" validate:"min=0,max=100"`
	SustainabilityWeight float64 `json:"sustainability_weight" validate:"min=0,max=100"`
}

type UpdateRFQStatusRequest struct {
	Status models.RFQStatus `json:"status" validate:"required,is-rfq-status"` // Кастомное правило
}

// --- RFQ Responses ---

type RFQResponse struct {
	ID          string           `json:"id"`
	BuyerID     string           `json:"buyer_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Deadline    *time.Time       `json:"deadline,omitempty"`
	Status      models.RFQStatus `json:"status"`
	Criteria    CriteriaDTO      `json:"criteria"`
	Views       int              `json:"views"`
	BidCount    int64            `json:"bid_count"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// --- Search Criteria ---

type RFQSearchCriteria struct {
	Query    string `form:"query"`
	Category string `form:"category"`
	Status   string `form:"status" validate:"omitempty,is-rfq-status"` // Кастомное правило
	BuyerID  string `form:"buyer_id"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// RFQFromModel строит RFQResponse из модели
func RFQFromModel(rfq *models.RFQ, bidCount int64) *RFQResponse {
	return &RFQResponse{
		ID:          rfq.ID,
		BuyerID:     rfq.BuyerID,
		Title:       rfq.Title,
		Description: rfq.Description,
		Category:    rfq.Category,
		Deadline:    rfq.Deadline,
		Status:      rfq.Status,
		Criteria: CriteriaDTO{
			PriceWeight:          rfq.WeightPrice,
			DeliveryWeight:       rfq.WeightDelivery,
			QualityWeight:        rfq.WeightQuality,
			ExperienceWeight:     rfq.WeightExperience,
			SustainabilityWeight: rfq.WeightSustainability,
		},
		Views:     rfq.Views,
		BidCount:  bidCount,
		CreatedAt: rfq.CreatedAt,
		UpdatedAt: rfq.UpdatedAt,
	}
}
