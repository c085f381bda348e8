package dto

import (
	"encoding/json"
	"time"

	"zakup_backend/internal/models"

	"gorm.io/datatypes"
)

// --- Bid Requests ---

type ComplianceItemDTO struct {
	Requirement string `json:"requirement" validate:"required"`
	Compliant   bool   `json:"compliant"`
}

type SubmitBidRequest struct {
	SupplierID string `json:"supplier_id" validate:"-"` // Устанавливается сервером
	RFQID      string `json:"rfq_id" validate:"-"`      // Устанавливается из URL

	Price               float64             `json:"price" validate:"required,min=0"`
	Currency            string              `json:"currency" validate:"omitempty,len=3"`
	DeliveryDate        time.Time           `json:"delivery_date" validate:"required"`
	Compliance          []ComplianceItemDTO `json:"specifications_compliance"`
	Certifications      []string            `json:"certifications"`
	SustainabilityScore *float64            `json:"sustainability_score" validate:"omitempty,min=0,max=100"`
	Notes               string              `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateBidRequest struct {
	Price               *float64            `json:"price,omitempty" validate:"omitempty,min=0"`
	DeliveryDate        *time.Time          `json:"delivery_date,omitempty"`
	Compliance          []ComplianceItemDTO `json:"specifications_compliance,omitempty"`
	Certifications      []string            `json:"certifications,omitempty"`
	SustainabilityScore *float64            `json:"sustainability_score,omitempty" validate:"omitempty,min=0,max=100"`
	Notes               *string             `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// --- Bid Responses ---

type BidResponse struct {
	ID                  string              `json:"id"`
	RFQID               string              `json:"rfq_id"`
	SupplierID          string              `json:"supplier_id"`
	Price               float64             `json:"price"`
	Currency            string              `json:"currency"`
	DeliveryDate        *time.Time          `json:"delivery_date,omitempty"`
	Compliance          []ComplianceItemDTO `json:"specifications_compliance"`
	Certifications      []string            `json:"certifications"`
	SustainabilityScore *float64            `json:"sustainability_score,omitempty"`
	Status              models.BidStatus    `json:"status"`
	Notes               string              `json:"notes,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// --- JSONB helpers ---

func ParseCompliance(data datatypes.JSON) []ComplianceItemDTO {
	var items []ComplianceItemDTO
	if len(data) > 0 {
		json.Unmarshal(data, &items)
	}
	return items
}

func FormatCompliance(items []ComplianceItemDTO) datatypes.JSON {
	if len(items) == 0 {
		return datatypes.JSON("[]")
	}
	jsonData, _ := json.Marshal(items)
	return datatypes.JSON(jsonData)
}

func ParseCertifications(data datatypes.JSON) []string {
	var certs []string
	if len(data) > 0 {
		json.Unmarshal(data, &certs)
	}
	return certs
}

func FormatCertifications(certs []string) datatypes.JSON {
	if len(certs) == 0 {
		return datatypes.JSON("[]")
	}
	jsonData, _ := json.Marshal(certs)
	return datatypes.JSON(jsonData)
}

// BidFromModel строит BidResponse из модели
func BidFromModel(bid *models.Bid) *BidResponse {
	return &BidResponse{
		ID:                  bid.ID,
		RFQID:               bid.RFQID,
		SupplierID:          bid.SupplierID,
		Price:               bid.Price,
		Currency:            bid.Currency,
		DeliveryDate:        bid.DeliveryDate,
		Compliance:          ParseCompliance(bid.Compliance),
		Certifications:      ParseCertifications(bid.Certifications),
		SustainabilityScore: bid.SustainabilityScore,
		Status:              bid.Status,
		Notes:               bid.Notes,
		CreatedAt:           bid.CreatedAt,
		UpdatedAt:           bid.UpdatedAt,
	}
}
