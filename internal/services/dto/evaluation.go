package dto

import (
	"encoding/json"
	"time"

	"zakup_backend/internal/evaluation"
	"zakup_backend/internal/models"
)

// --- Evaluation Requests ---

// EvaluateRFQRequest - запрос запуска оценки по RFQ.
// Критерии опциональны: по умолчанию берутся веса с самого RFQ.
type EvaluateRFQRequest struct {
	EvaluatorID    string            `json:"evaluator_id" validate:"-"` // Устанавливается сервером
	Criteria       *CriteriaDTO      `json:"criteria,omitempty" validate:"omitempty"`
	EvaluatorNotes map[string]string `json:"evaluator_notes,omitempty"`
}

// --- Evaluation Responses ---

type BidEvaluationDTO struct {
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
	Notes          string                `json:"notes,omitempty"`
}

type EvaluationSummaryDTO struct {
	TotalBids         int     `json:"total_bids"`
	RecommendedAwards int     `json:"recommended_awards"`
	Shortlisted       int     `json:"shortlisted"`
	Rejected          int     `json:"rejected"`
	WinningBidID      string  `json:"winning_bid_id"`
	WinningScore      float64 `json:"winning_score"`
}

type EvaluationResponse struct {
	ID          string               `json:"id,omitempty"`
	RFQID       string               `json:"rfq_id"`
	EvaluatorID string               `json:"evaluator_id"`
	EvaluatedAt time.Time            `json:"evaluated_at"`
	Criteria    CriteriaDTO          `json:"criteria"`
	Evaluations []BidEvaluationDTO   `json:"evaluations"`
	Summary     EvaluationSummaryDTO `json:"summary"`
}

// EvaluationFromModel строит ответ из сохраненного запуска оценки.
// Строки результатов приходят отсортированными по месту.
func EvaluationFromModel(eval *models.Evaluation) *EvaluationResponse {
	var criteria CriteriaDTO
	if len(eval.CriteriaSnapshot) > 0 {
		json.Unmarshal(eval.CriteriaSnapshot, &criteria)
	}

	evals := make([]BidEvaluationDTO, len(eval.Results))
	summary := EvaluationSummaryDTO{TotalBids: eval.BidsEvaluated}
	for i := range eval.Results {
		row := &eval.Results[i]
		evals[i] = BidEvaluationDTO{
			BidID:               row.BidID,
			SupplierID:          row.SupplierID,
			PriceScore:          row.PriceScore,
			DeliveryScore:       row.DeliveryScore,
			QualityScore:        row.QualityScore,
			ExperienceScore:     row.ExperienceScore,
			SustainabilityScore: row.SustainabilityScore,
			TotalScore:          row.TotalScore,
			Ranking:             row.Rank,
			Recommendation:      row.Recommendation,
		}

		switch row.Recommendation {
		case models.RecommendationAward:
			summary.RecommendedAwards++
		case models.RecommendationShortlist:
			summary.Shortlisted++
		case models.RecommendationReject:
			summary.Rejected++
		}

		if row.Rank == 1 {
			summary.WinningBidID = row.BidID
			summary.WinningScore = row.TotalScore
		}
	}

	return &EvaluationResponse{
		ID:          eval.ID,
		RFQID:       eval.RFQID,
		EvaluatorID: eval.EvaluatorID,
		EvaluatedAt: eval.EvaluatedAt,
		Criteria:    criteria,
		Evaluations: evals,
		Summary:     summary,
	}
}

// EvaluationFromResult строит ответ из результата движка.
func EvaluationFromResult(id string, result *evaluation.Result) *EvaluationResponse {
	evals := make([]BidEvaluationDTO, len(result.Evaluations))
	for i, ev := range result.Evaluations {
		evals[i] = BidEvaluationDTO{
			BidID:               ev.BidID,
			SupplierID:          ev.SupplierID,
			PriceScore:          ev.PriceScore,
			DeliveryScore:       ev.DeliveryScore,
			QualityScore:        ev.QualityScore,
			ExperienceScore:     ev.ExperienceScore,
			SustainabilityScore: ev.SustainabilityScore,
			TotalScore:          ev.TotalScore,
			Ranking:             ev.Ranking,
			Recommendation:      ev.Recommendation,
			Notes:               ev.Notes,
		}
	}

	return &EvaluationResponse{
		ID:          id,
		RFQID:       result.RFQID,
		EvaluatorID: result.EvaluatorID,
		EvaluatedAt: result.EvaluatedAt,
		Criteria: CriteriaDTO{
			PriceWeight:          result.Criteria.PriceWeight,
			DeliveryWeight:       result.Criteria.DeliveryWeight,
			QualityWeight:        result.Criteria.QualityWeight,
			ExperienceWeight:     result.Criteria.ExperienceWeight,
			SustainabilityWeight: result.Criteria.SustainabilityWeight,
		},
		Evaluations: evals,
		Summary: EvaluationSummaryDTO{
			TotalBids:         result.Summary.TotalBids,
			RecommendedAwards: result.Summary.RecommendedAwards,
			Shortlisted:       result.Summary.Shortlisted,
			Rejected:          result.Summary.Rejected,
			WinningBidID:      result.Summary.WinningBidID,
			WinningScore:      result.Summary.WinningScore,
		},
	}
}
