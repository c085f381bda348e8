package evaluation

import (
	"testing"

	"zakup_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		total    float64
		expected models.Recommendation
	}{
		{100.00, models.RecommendationAward},
		{85.00, models.RecommendationAward}, // нижняя граница Award включительно
		{84.99, models.RecommendationShortlist},
		{70.00, models.RecommendationShortlist}, // нижняя граница Shortlist включительно
		{69.99, models.RecommendationReject},
		{0.00, models.RecommendationReject},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, classify(tt.total, policy), "total=%.2f", tt.total)
	}
}

func TestRankAndClassify_SortsDescending(t *testing.T) {
	evals := []BidEvaluation{
		{BidID: "low", TotalScore: 40},
		{BidID: "high", TotalScore: 90},
		{BidID: "mid", TotalScore: 75},
	}

	rankAndClassify(evals, DefaultPolicy())

	assert.Equal(t, "high", evals[0].BidID)
	assert.Equal(t, "mid", evals[1].BidID)
	assert.Equal(t, "low", evals[2].BidID)

	assert.Equal(t, 1, evals[0].Ranking)
	assert.Equal(t, 2, evals[1].Ranking)
	assert.Equal(t, 3, evals[2].Ranking)

	assert.Equal(t, models.RecommendationAward, evals[0].Recommendation)
	assert.Equal(t, models.RecommendationShortlist, evals[1].Recommendation)
	assert.Equal(t, models.RecommendationReject, evals[2].Recommendation)
}

func TestRankAndClassify_StableOnTies(t *testing.T) {
	evals := []BidEvaluation{
		{BidID: "first", TotalScore: 80},
		{BidID: "second", TotalScore: 80},
		{BidID: "between", TotalScore: 90},
		{BidID: "third", TotalScore: 80},
	}

	rankAndClassify(evals, DefaultPolicy())

	assert.Equal(t, "between", evals[0].BidID)
	// Равные очки сохраняют исходный порядок подачи
	assert.Equal(t, "first", evals[1].BidID)
	assert.Equal(t, "second", evals[2].BidID)
	assert.Equal(t, "third", evals[3].BidID)
}

func TestBuildSummary(t *testing.T) {
	evals := []BidEvaluation{
		{BidID: "a", TotalScore: 90, Ranking: 1, Recommendation: models.RecommendationAward},
		{BidID: "b", TotalScore: 75, Ranking: 2, Recommendation: models.RecommendationShortlist},
		{BidID: "c", TotalScore: 50, Ranking: 3, Recommendation: models.RecommendationReject},
	}

	s := buildSummary(evals)

	assert.Equal(t, 3, s.TotalBids)
	assert.Equal(t, 1, s.RecommendedAwards)
	assert.Equal(t, 1, s.Shortlisted)
	assert.Equal(t, 1, s.Rejected)
	assert.Equal(t, "a", s.WinningBidID)
	assert.Equal(t, 90.0, s.WinningScore)
}
