package evaluation

import (
	"testing"
	"time"

	"zakup_backend/internal/models"
	"zakup_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day1 = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
var day2 = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func equalWeights() Criteria {
	return Criteria{
		PriceWeight:          20,
		DeliveryWeight:       20,
		QualityWeight:        20,
		ExperienceWeight:     20,
		SustainabilityWeight: 20,
	}
}

// fixedEngine pins experience and sustainability so totals are easy
// to compute by hand.
func fixedEngine(score float64) *Engine {
	return NewEngine(DefaultPolicy(), FixedScorer(score), FixedScorer(score))
}

func TestEvaluate_InvalidCriteria(t *testing.T) {
	engine := fixedEngine(80)

	req := &Request{
		RFQID: "rfq-1",
		Criteria: Criteria{
			PriceWeight:          20,
			DeliveryWeight:       20,
			QualityWeight:        20,
			ExperienceWeight:     20,
			SustainabilityWeight: 10, // сумма 90
		},
		Bids: []Bid{{ID: "a", UnitPrice: 100, DeliveryDate: day1}},
	}

	result, err := engine.Evaluate(req)
	require.Error(t, err)
	assert.Nil(t, result)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidCriteria, appErr.Code)
}

func TestEvaluate_CriteriaWithinEpsilon(t *testing.T) {
	engine := fixedEngine(80)

	criteria := equalWeights()
	criteria.PriceWeight = 20.005 // сумма 100.005, внутри допуска 0.01

	req := &Request{
		RFQID:    "rfq-1",
		Criteria: criteria,
		Bids:     []Bid{{ID: "a", UnitPrice: 100, DeliveryDate: day1}},
	}

	_, err := engine.Evaluate(req)
	assert.NoError(t, err)
}

func TestEvaluate_EmptyBidSet(t *testing.T) {
	engine := fixedEngine(80)

	req := &Request{
		RFQID:    "rfq-1",
		Criteria: equalWeights(),
		Bids:     []Bid{},
	}

	result, err := engine.Evaluate(req)
	require.Error(t, err)
	assert.Nil(t, result)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeEmptyBidSet, appErr.Code)
}

func TestEvaluate_MalformedBid(t *testing.T) {
	engine := fixedEngine(80)

	tests := []struct {
		name string
		bid  Bid
	}{
		{"negative price", Bid{ID: "a", UnitPrice: -5, DeliveryDate: day1}},
		{"missing delivery date", Bid{ID: "a", UnitPrice: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &Request{
				RFQID:    "rfq-1",
				Criteria: equalWeights(),
				Bids:     []Bid{tt.bid},
			}

			result, err := engine.Evaluate(req)
			require.Error(t, err)
			assert.Nil(t, result)

			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.CodeMalformedBid, appErr.Code)
		})
	}
}

func TestEvaluate_TwoBidsClearWinner(t *testing.T) {
	engine := fixedEngine(80)

	req := &Request{
		RFQID:       "rfq-1",
		EvaluatorID: "buyer-1",
		Criteria:    equalWeights(),
		Bids: []Bid{
			{
				ID:           "a",
				SupplierID:   "sup-a",
				UnitPrice:    100,
				DeliveryDate: day1,
				Compliance: []ComplianceItem{
					{Requirement: "voltage", Compliant: true},
					{Requirement: "material", Compliant: true},
				},
			},
			{
				ID:           "b",
				SupplierID:   "sup-b",
				UnitPrice:    200,
				DeliveryDate: day2,
				Compliance: []ComplianceItem{
					{Requirement: "voltage", Compliant: true},
					{Requirement: "material", Compliant: false},
				},
			},
		},
	}

	result, err := engine.Evaluate(req)
	require.NoError(t, err)
	require.Len(t, result.Evaluations, 2)

	a := result.Evaluations[0]
	b := result.Evaluations[1]

	assert.Equal(t, "a", a.BidID)
	assert.Equal(t, 1, a.Ranking)
	assert.Equal(t, 100.0, a.PriceScore)
	assert.Equal(t, 100.0, a.DeliveryScore)
	assert.Equal(t, 70.0, a.QualityScore)
	// (100+100+70+80+80)*20/100
	assert.Equal(t, 86.0, a.TotalScore)
	assert.Equal(t, models.RecommendationAward, a.Recommendation)

	assert.Equal(t, "b", b.BidID)
	assert.Equal(t, 2, b.Ranking)
	assert.Equal(t, 0.0, b.PriceScore)
	assert.Equal(t, 0.0, b.DeliveryScore)
	assert.Equal(t, 35.0, b.QualityScore)
	// (0+0+35+80+80)*20/100
	assert.Equal(t, 39.0, b.TotalScore)
	assert.Equal(t, models.RecommendationReject, b.Recommendation)

	assert.Equal(t, "a", result.Summary.WinningBidID)
	assert.Equal(t, 86.0, result.Summary.WinningScore)
	assert.Equal(t, 2, result.Summary.TotalBids)
	assert.Equal(t, 1, result.Summary.RecommendedAwards)
	assert.Equal(t, 0, result.Summary.Shortlisted)
	assert.Equal(t, 1, result.Summary.Rejected)
}

func TestEvaluate_SingleBid(t *testing.T) {
	engine := fixedEngine(80)

	req := &Request{
		RFQID:    "rfq-1",
		Criteria: equalWeights(),
		Bids: []Bid{
			{ID: "only", SupplierID: "sup-1", UnitPrice: 500, DeliveryDate: day2},
		},
	}

	result, err := engine.Evaluate(req)
	require.NoError(t, err)
	require.Len(t, result.Evaluations, 1)

	ev := result.Evaluations[0]
	assert.Equal(t, 100.0, ev.PriceScore)
	assert.Equal(t, 100.0, ev.DeliveryScore)
	assert.Equal(t, 1, ev.Ranking)
	assert.Equal(t, "only", result.Summary.WinningBidID)
}

func TestEvaluate_RankingIsPermutation(t *testing.T) {
	engine := NewEngine(DefaultPolicy(), nil, nil)

	bids := []Bid{
		{ID: "a", SupplierID: "s1", UnitPrice: 120, DeliveryDate: day1},
		{ID: "b", SupplierID: "s2", UnitPrice: 80, DeliveryDate: day2},
		{ID: "c", SupplierID: "s3", UnitPrice: 300, DeliveryDate: day1.AddDate(0, 0, 10)},
		{ID: "d", SupplierID: "s4", UnitPrice: 95, DeliveryDate: day2, Certifications: []string{"ISO 9001"}},
	}

	result, err := engine.Evaluate(&Request{RFQID: "rfq-1", Criteria: equalWeights(), Bids: bids})
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, ev := range result.Evaluations {
		assert.False(t, seen[ev.Ranking], "ranking %d used twice", ev.Ranking)
		seen[ev.Ranking] = true
		assert.GreaterOrEqual(t, ev.Ranking, 1)
		assert.LessOrEqual(t, ev.Ranking, len(bids))
	}

	// Sort correctness: lower rank never has a lower total
	for i := 1; i < len(result.Evaluations); i++ {
		assert.GreaterOrEqual(t,
			result.Evaluations[i-1].TotalScore,
			result.Evaluations[i].TotalScore,
		)
	}
}

func TestEvaluate_ScoreBounds(t *testing.T) {
	engine := NewEngine(DefaultPolicy(), nil, nil)

	sustainability := 150.0 // будет обрезано до 100
	bids := []Bid{
		{ID: "a", SupplierID: "s1", UnitPrice: 0, DeliveryDate: day1,
			Certifications: []string{"c1", "c2", "c3", "c4", "c5"}},
		{ID: "b", SupplierID: "s2", UnitPrice: 999999, DeliveryDate: day2,
			SustainabilityScore: &sustainability},
	}

	result, err := engine.Evaluate(&Request{RFQID: "rfq-1", Criteria: equalWeights(), Bids: bids})
	require.NoError(t, err)

	for _, ev := range result.Evaluations {
		for _, score := range []float64{
			ev.PriceScore, ev.DeliveryScore, ev.QualityScore,
			ev.ExperienceScore, ev.SustainabilityScore, ev.TotalScore,
		} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}

func TestEvaluate_StableTies(t *testing.T) {
	engine := fixedEngine(80)

	// Три неразличимых предложения: одинаковые totals
	bids := []Bid{
		{ID: "first", SupplierID: "s", UnitPrice: 100, DeliveryDate: day1},
		{ID: "second", SupplierID: "s", UnitPrice: 100, DeliveryDate: day1},
		{ID: "third", SupplierID: "s", UnitPrice: 100, DeliveryDate: day1},
	}

	result, err := engine.Evaluate(&Request{RFQID: "rfq-1", Criteria: equalWeights(), Bids: bids})
	require.NoError(t, err)

	// Порядок подачи сохраняется при равных очках
	assert.Equal(t, "first", result.Evaluations[0].BidID)
	assert.Equal(t, "second", result.Evaluations[1].BidID)
	assert.Equal(t, "third", result.Evaluations[2].BidID)
	assert.Equal(t, 1, result.Evaluations[0].Ranking)
	assert.Equal(t, 2, result.Evaluations[1].Ranking)
	assert.Equal(t, 3, result.Evaluations[2].Ranking)
}

func TestEvaluate_Deterministic(t *testing.T) {
	engine := NewEngine(DefaultPolicy(), nil, nil)

	req := func() *Request {
		return &Request{
			RFQID:    "rfq-1",
			Criteria: equalWeights(),
			Bids: []Bid{
				{ID: "a", SupplierID: "s1", UnitPrice: 120, DeliveryDate: day1},
				{ID: "b", SupplierID: "s2", UnitPrice: 80, DeliveryDate: day2},
			},
		}
	}

	first, err := engine.Evaluate(req())
	require.NoError(t, err)
	second, err := engine.Evaluate(req())
	require.NoError(t, err)

	assert.Equal(t, first.Evaluations, second.Evaluations)
	assert.Equal(t, first.Summary, second.Summary)
}

func TestEvaluate_SummaryConsistency(t *testing.T) {
	engine := NewEngine(DefaultPolicy(), nil, nil)

	bids := []Bid{
		{ID: "a", SupplierID: "s1", UnitPrice: 100, DeliveryDate: day1,
			Compliance: []ComplianceItem{{Requirement: "r", Compliant: true}}},
		{ID: "b", SupplierID: "s2", UnitPrice: 150, DeliveryDate: day2},
		{ID: "c", SupplierID: "s3", UnitPrice: 200, DeliveryDate: day2.AddDate(0, 0, 5)},
	}

	result, err := engine.Evaluate(&Request{RFQID: "rfq-1", Criteria: equalWeights(), Bids: bids})
	require.NoError(t, err)

	s := result.Summary
	assert.Equal(t, len(result.Evaluations), s.TotalBids)
	assert.Equal(t, s.TotalBids, s.RecommendedAwards+s.Shortlisted+s.Rejected)
	assert.Equal(t, result.Evaluations[0].BidID, s.WinningBidID)
	assert.Equal(t, result.Evaluations[0].TotalScore, s.WinningScore)
}

func TestEvaluate_EvaluatorNotes(t *testing.T) {
	engine := fixedEngine(80)

	req := &Request{
		RFQID:    "rfq-1",
		Criteria: equalWeights(),
		Bids: []Bid{
			{ID: "a", SupplierID: "s1", UnitPrice: 100, DeliveryDate: day1},
		},
		EvaluatorNotes: map[string]string{"a": "preferred supplier"},
	}

	result, err := engine.Evaluate(req)
	require.NoError(t, err)
	assert.Contains(t, result.Evaluations[0].Notes, "100.00")
	assert.Contains(t, result.Evaluations[0].Notes, "2026-03-01")
	assert.Contains(t, result.Evaluations[0].Notes, "preferred supplier")
}
