package evaluation

import "hash/fnv"

// Scorer supplies one 0-100 sub-score for a bid. Experience and
// sustainability have no universal formula, so callers can plug in
// their own source (supplier history, external ESG ratings).
// Implementations must be deterministic: the same bid always gets
// the same score, or evaluation results stop being auditable.
type Scorer interface {
	Score(bid *Bid) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(bid *Bid) float64

func (f ScorerFunc) Score(bid *Bid) float64 {
	return f(bid)
}

// DefaultExperienceScorer maps the supplier ID onto [75, 100] with a
// stable hash. Without supplier history data every supplier gets a
// decent baseline, and repeated runs over the same bid set agree.
func DefaultExperienceScorer() Scorer {
	return ScorerFunc(func(bid *Bid) float64 {
		return hashToRange(bid.SupplierID, 75, 100)
	})
}

// DefaultSustainabilityScorer uses the bid's declared sustainability
// score when present, clamped to [0, 100]. Bids without a declared
// value fall back to a stable hash over [60, 100].
func DefaultSustainabilityScorer() Scorer {
	return ScorerFunc(func(bid *Bid) float64 {
		if bid.SustainabilityScore != nil {
			return clampScore(*bid.SustainabilityScore)
		}
		return hashToRange(bid.SupplierID, 60, 100)
	})
}

// FixedScorer returns the same score for every bid. Useful in tests
// and for deployments that weight a criterion at zero.
func FixedScorer(score float64) Scorer {
	fixed := clampScore(score)
	return ScorerFunc(func(*Bid) float64 {
		return fixed
	})
}

// hashToRange deterministically maps a key onto [lo, hi].
func hashToRange(key string, lo, hi float64) float64 {
	h := fnv.New32a()
	h.Write([]byte(key))
	span := hi - lo
	return lo + float64(h.Sum32()%uint32(span+1))
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
