package evaluation

import "math"

// qualityScore derives a 0-100 score from the specification
// compliance ratio plus a capped certification bonus.
//
// An empty compliance list yields a zero compliance contribution: a
// bid that declares nothing gets no quality credit from that source.
func qualityScore(bid *Bid, policy Policy) float64 {
	compliant := 0
	for _, item := range bid.Compliance {
		if item.Compliant {
			compliant++
		}
	}

	total := len(bid.Compliance)
	complianceRate := float64(compliant) / math.Max(float64(total), 1)

	bonus := math.Min(float64(len(bid.Certifications))*policy.CertificationBonus, policy.CertificationBonusCap)

	score := math.Min(complianceRate*policy.ComplianceWeight+bonus, 100)
	return roundScore(score)
}
