package evaluation

import (
	"sort"

	"zakup_backend/internal/models"
)

// rankAndClassify sorts evaluations by total score descending and
// assigns 1-based rankings. The sort is stable: bids with equal
// totals keep their submission order, so reruns over the same input
// always produce the same table.
func rankAndClassify(evals []BidEvaluation, policy Policy) {
	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].TotalScore > evals[j].TotalScore
	})

	for i := range evals {
		evals[i].Ranking = i + 1
		evals[i].Recommendation = classify(evals[i].TotalScore, policy)
	}
}

// classify maps a rounded total score onto a recommendation tier.
// Thresholds are inclusive at the lower bound of each tier.
func classify(total float64, policy Policy) models.Recommendation {
	switch {
	case total >= policy.AwardThreshold:
		return models.RecommendationAward
	case total >= policy.ShortlistThreshold:
		return models.RecommendationShortlist
	default:
		return models.RecommendationReject
	}
}

// buildSummary counts evaluations per tier and reads the winner off
// the rank-1 row. Callers pass the slice already sorted by ranking.
func buildSummary(evals []BidEvaluation) Summary {
	s := Summary{TotalBids: len(evals)}

	for _, ev := range evals {
		switch ev.Recommendation {
		case models.RecommendationAward:
			s.RecommendedAwards++
		case models.RecommendationShortlist:
			s.Shortlisted++
		default:
			s.Rejected++
		}
	}

	if len(evals) > 0 {
		s.WinningBidID = evals[0].BidID
		s.WinningScore = evals[0].TotalScore
	}

	return s
}
