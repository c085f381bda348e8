package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultExperienceScorer(t *testing.T) {
	scorer := DefaultExperienceScorer()

	bid := &Bid{ID: "a", SupplierID: "sup-1"}

	score := scorer.Score(bid)
	assert.GreaterOrEqual(t, score, 75.0)
	assert.LessOrEqual(t, score, 100.0)

	// Один и тот же поставщик всегда получает одну и ту же оценку
	assert.Equal(t, score, scorer.Score(bid))
}

func TestDefaultSustainabilityScorer_DeclaredValue(t *testing.T) {
	scorer := DefaultSustainabilityScorer()

	declared := 42.5
	bid := &Bid{SupplierID: "sup-1", SustainabilityScore: &declared}

	assert.Equal(t, 42.5, scorer.Score(bid))
}

func TestDefaultSustainabilityScorer_ClampsDeclaredValue(t *testing.T) {
	scorer := DefaultSustainabilityScorer()

	over := 150.0
	assert.Equal(t, 100.0, scorer.Score(&Bid{SustainabilityScore: &over}))

	under := -10.0
	assert.Equal(t, 0.0, scorer.Score(&Bid{SustainabilityScore: &under}))
}

func TestDefaultSustainabilityScorer_Fallback(t *testing.T) {
	scorer := DefaultSustainabilityScorer()

	bid := &Bid{SupplierID: "sup-1"}

	score := scorer.Score(bid)
	assert.GreaterOrEqual(t, score, 60.0)
	assert.LessOrEqual(t, score, 100.0)
	assert.Equal(t, score, scorer.Score(bid))
}

func TestFixedScorer(t *testing.T) {
	assert.Equal(t, 80.0, FixedScorer(80).Score(&Bid{ID: "any"}))
	assert.Equal(t, 100.0, FixedScorer(250).Score(&Bid{}))
	assert.Equal(t, 0.0, FixedScorer(-5).Score(&Bid{}))
}
