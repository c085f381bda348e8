package evaluation

import (
	"fmt"
	"math"
	"time"

	"zakup_backend/pkg/apperrors"
)

// weightEpsilon is the tolerance for the criteria weight sum check.
const weightEpsilon = 0.01

// Engine runs one evaluation: validate the criteria and bid set,
// score every bid on the five criteria, rank and classify. It is a
// pure computation with no state shared across calls, so a single
// Engine can serve concurrent evaluations.
type Engine struct {
	policy         Policy
	experience     Scorer
	sustainability Scorer
}

// NewEngine builds an engine with the given policy and scorers.
// Nil scorers fall back to the deterministic defaults.
func NewEngine(policy Policy, experience, sustainability Scorer) *Engine {
	if experience == nil {
		experience = DefaultExperienceScorer()
	}
	if sustainability == nil {
		sustainability = DefaultSustainabilityScorer()
	}
	return &Engine{
		policy:         policy,
		experience:     experience,
		sustainability: sustainability,
	}
}

// Evaluate scores and ranks the bid set. Validation is all-or-nothing
// up front: a bad request never produces partial evaluations.
func (e *Engine) Evaluate(req *Request) (*Result, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}

	priceScores := normalizePrices(req.Bids)
	deliveryScores := normalizeDelivery(req.Bids)

	evals := make([]BidEvaluation, len(req.Bids))
	for i := range req.Bids {
		bid := &req.Bids[i]

		ev := BidEvaluation{
			BidID:               bid.ID,
			SupplierID:          bid.SupplierID,
			PriceScore:          priceScores[i],
			DeliveryScore:       deliveryScores[i],
			QualityScore:        qualityScore(bid, e.policy),
			ExperienceScore:     roundScore(clampScore(e.experience.Score(bid))),
			SustainabilityScore: roundScore(clampScore(e.sustainability.Score(bid))),
		}
		ev.TotalScore = totalScore(&ev, req.Criteria)
		ev.Notes = buildNotes(bid, req.EvaluatorNotes[bid.ID])

		evals[i] = ev
	}

	rankAndClassify(evals, e.policy)

	return &Result{
		RFQID:       req.RFQID,
		EvaluatedAt: time.Now().UTC(),
		EvaluatorID: req.EvaluatorID,
		Criteria:    req.Criteria,
		Evaluations: evals,
		Summary:     buildSummary(evals),
	}, nil
}

// validate checks the criteria and every bid before any scoring runs.
func (e *Engine) validate(req *Request) error {
	sum := req.Criteria.Sum()
	if math.Abs(sum-100) > weightEpsilon {
		return apperrors.ErrInvalidCriteria(
			fmt.Errorf("weights sum to %.2f, expected 100", sum),
		).WithDetails(map[string]interface{}{"weight_sum": sum})
	}

	if len(req.Bids) == 0 {
		return apperrors.ErrEmptyBidSet(
			fmt.Errorf("rfq %s has no bids to evaluate", req.RFQID),
		)
	}

	for i := range req.Bids {
		bid := &req.Bids[i]

		if math.IsNaN(bid.UnitPrice) || math.IsInf(bid.UnitPrice, 0) || bid.UnitPrice < 0 {
			return apperrors.ErrMalformedBid(
				fmt.Errorf("bid %s: invalid unit price %v", bid.ID, bid.UnitPrice),
			).WithDetails(map[string]interface{}{"bid_id": bid.ID, "unit_price": bid.UnitPrice})
		}

		if bid.DeliveryDate.IsZero() {
			return apperrors.ErrMalformedBid(
				fmt.Errorf("bid %s: missing delivery date", bid.ID),
			).WithDetails(map[string]interface{}{"bid_id": bid.ID})
		}
	}

	return nil
}

// totalScore is the weighted average of the five sub-scores.
// Weights sum to 100, so dividing by 100 keeps the result in [0, 100].
func totalScore(ev *BidEvaluation, c Criteria) float64 {
	total := ev.PriceScore*c.PriceWeight +
		ev.DeliveryScore*c.DeliveryWeight +
		ev.QualityScore*c.QualityWeight +
		ev.ExperienceScore*c.ExperienceWeight +
		ev.SustainabilityScore*c.SustainabilityWeight
	return roundScore(total / 100)
}

// buildNotes renders the advisory per-bid summary line.
func buildNotes(bid *Bid, evaluatorNote string) string {
	notes := fmt.Sprintf("Unit price %.2f, delivery by %s",
		bid.UnitPrice, bid.DeliveryDate.Format("2006-01-02"))
	if evaluatorNote != "" {
		notes += "; " + evaluatorNote
	}
	return notes
}
