package evaluation

import (
	"time"

	"zakup_backend/internal/models"
)

// ComplianceItem is one line of a bid's specification checklist.
type ComplianceItem struct {
	Requirement string `json:"requirement"`
	Compliant   bool   `json:"compliant"`
}

// Bid is the snapshot of a supplier offer taken for one evaluation run.
// It carries only the attributes scoring needs, detached from storage.
type Bid struct {
	ID                  string           `json:"id"`
	SupplierID          string           `json:"supplier_id"`
	UnitPrice           float64          `json:"unit_price"`
	DeliveryDate        time.Time        `json:"delivery_date"`
	Compliance          []ComplianceItem `json:"specifications_compliance"`
	Certifications      []string         `json:"certifications"`
	SustainabilityScore *float64         `json:"sustainability_score,omitempty"`
}

// Criteria is the weighting configuration for one run.
// The five weights are percentages and must sum to 100.
type Criteria struct {
	PriceWeight          float64 `json:"price_weight" validate:"min=0"`
	DeliveryWeight       float64 `json:"delivery_weight" validate:"min=0"`
	QualityWeight        float64 `json:"quality_weight" validate:"min=0"`
	ExperienceWeight     float64 `json:"experience_weight" validate:"min=0"`
	SustainabilityWeight float64 `json:"sustainability_weight" validate:"min=0"`
}

// Sum returns the total of the five weights.
func (c Criteria) Sum() float64 {
	return c.PriceWeight + c.DeliveryWeight + c.QualityWeight +
		c.ExperienceWeight + c.SustainabilityWeight
}

// BidEvaluation is the scored row for one bid.
type BidEvaluation struct {
	BidID      string `json:"bid_id"`
	SupplierID string `json:"supplier_id"`

	PriceScore          float64 `json:"price_score"`
	DeliveryScore       float64 `json:"delivery_score"`
	QualityScore        float64 `json:"quality_score"`
	ExperienceScore     float64 `json:"experience_score"`
	SustainabilityScore float64 `json:"sustainability_score"`

	TotalScore     float64               `json:"total_score"`
	Ranking        int                   `json:"ranking"`
	Recommendation models.Recommendation `json:"recommendation"`
	Notes          string                `json:"notes"`
}

// Summary aggregates one result set. All fields are derived.
type Summary struct {
	TotalBids         int     `json:"total_bids"`
	RecommendedAwards int     `json:"recommended_awards"`
	Shortlisted       int     `json:"shortlisted"`
	Rejected          int     `json:"rejected"`
	WinningBidID      string  `json:"winning_bid_id"`
	WinningScore      float64 `json:"winning_score"`
}

// Request is the full input for one evaluation run.
type Request struct {
	RFQID          string            `json:"rfq_id"`
	EvaluatorID    string            `json:"evaluator_id"`
	Criteria       Criteria          `json:"criteria"`
	Bids           []Bid             `json:"bids"`
	EvaluatorNotes map[string]string `json:"evaluator_notes,omitempty"`
}

// Result is the full output of one evaluation run.
// Evaluations are ordered by ranking ascending.
type Result struct {
	RFQID       string          `json:"rfq_id"`
	EvaluatedAt time.Time       `json:"evaluated_at"`
	EvaluatorID string          `json:"evaluator_id"`
	Criteria    Criteria        `json:"criteria"`
	Evaluations []BidEvaluation `json:"evaluations"`
	Summary     Summary         `json:"summary"`
}
