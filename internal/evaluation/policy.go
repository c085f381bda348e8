package evaluation

// Policy holds the fixed scoring constants and classification thresholds.
// They are policy values of the procurement process, kept out of the
// formulas so a deployment can tune them without touching scoring code.
type Policy struct {
	// Quality formula: compliance_rate*ComplianceWeight + certification bonus
	ComplianceWeight      float64
	CertificationBonus    float64 // points per certification
	CertificationBonusCap float64

	// Classification thresholds, inclusive at the lower bound
	AwardThreshold     float64
	ShortlistThreshold float64
}

// DefaultPolicy returns the standard 70/30 quality split and the
// 85/70 classification thresholds.
func DefaultPolicy() Policy {
	return Policy{
		ComplianceWeight:      70,
		CertificationBonus:    10,
		CertificationBonusCap: 30,
		AwardThreshold:        85,
		ShortlistThreshold:    70,
	}
}
