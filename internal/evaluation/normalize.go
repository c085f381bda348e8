package evaluation

import "math"

// roundScore rounds to 2 decimal places, the precision of every
// published score.
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

// normalizePrices min-max scales unit prices across the bid set.
// Lower price scores higher. When every bid has the same price all
// of them score 100, which also covers the single-bid case.
func normalizePrices(bids []Bid) []float64 {
	minPrice, maxPrice := bids[0].UnitPrice, bids[0].UnitPrice
	for _, b := range bids[1:] {
		if b.UnitPrice < minPrice {
			minPrice = b.UnitPrice
		}
		if b.UnitPrice > maxPrice {
			maxPrice = b.UnitPrice
		}
	}

	scores := make([]float64, len(bids))
	for i, b := range bids {
		if maxPrice == minPrice {
			scores[i] = 100
			continue
		}
		scores[i] = roundScore((maxPrice - b.UnitPrice) / (maxPrice - minPrice) * 100)
	}
	return scores
}

// normalizeDelivery min-max scales delivery dates on a linear time
// scale. The earliest date scores 100; identical dates all score 100.
func normalizeDelivery(bids []Bid) []float64 {
	earliest, latest := bids[0].DeliveryDate, bids[0].DeliveryDate
	for _, b := range bids[1:] {
		if b.DeliveryDate.Before(earliest) {
			earliest = b.DeliveryDate
		}
		if b.DeliveryDate.After(latest) {
			latest = b.DeliveryDate
		}
	}

	span := latest.Sub(earliest)
	scores := make([]float64, len(bids))
	for i, b := range bids {
		if span == 0 {
			scores[i] = 100
			continue
		}
		ahead := latest.Sub(b.DeliveryDate)
		scores[i] = roundScore(float64(ahead) / float64(span) * 100)
	}
	return scores
}
