package evaluation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrices(t *testing.T) {
	bids := []Bid{
		{ID: "a", UnitPrice: 100},
		{ID: "b", UnitPrice: 150},
		{ID: "c", UnitPrice: 200},
	}

	scores := normalizePrices(bids)

	assert.Equal(t, 100.0, scores[0]) // самая низкая цена
	assert.Equal(t, 50.0, scores[1])
	assert.Equal(t, 0.0, scores[2]) // самая высокая цена
}

func TestNormalizePrices_AllEqual(t *testing.T) {
	bids := []Bid{
		{ID: "a", UnitPrice: 100},
		{ID: "b", UnitPrice: 100},
		{ID: "c", UnitPrice: 100},
	}

	for _, score := range normalizePrices(bids) {
		assert.Equal(t, 100.0, score)
	}
}

func TestNormalizePrices_SingleBid(t *testing.T) {
	scores := normalizePrices([]Bid{{ID: "a", UnitPrice: 100}})
	assert.Equal(t, []float64{100.0}, scores)
}

func TestNormalizeDelivery(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	bids := []Bid{
		{ID: "a", DeliveryDate: base},
		{ID: "b", DeliveryDate: base.AddDate(0, 0, 5)},
		{ID: "c", DeliveryDate: base.AddDate(0, 0, 10)},
	}

	scores := normalizeDelivery(bids)

	assert.Equal(t, 100.0, scores[0]) // самая ранняя поставка
	assert.Equal(t, 50.0, scores[1])
	assert.Equal(t, 0.0, scores[2]) // самая поздняя поставка
}

func TestNormalizeDelivery_AllEqual(t *testing.T) {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	bids := []Bid{
		{ID: "a", DeliveryDate: date},
		{ID: "b", DeliveryDate: date},
	}

	for _, score := range normalizeDelivery(bids) {
		assert.Equal(t, 100.0, score)
	}
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 33.33, roundScore(100.0/3))
	assert.Equal(t, 66.67, roundScore(200.0/3))
	assert.Equal(t, 100.0, roundScore(100))
}
