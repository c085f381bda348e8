package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityScore_FullCompliance(t *testing.T) {
	bid := &Bid{
		Compliance: []ComplianceItem{
			{Requirement: "voltage", Compliant: true},
			{Requirement: "material", Compliant: true},
		},
	}

	assert.Equal(t, 70.0, qualityScore(bid, DefaultPolicy()))
}

func TestQualityScore_PartialCompliance(t *testing.T) {
	bid := &Bid{
		Compliance: []ComplianceItem{
			{Requirement: "voltage", Compliant: true},
			{Requirement: "material", Compliant: false},
		},
	}

	assert.Equal(t, 35.0, qualityScore(bid, DefaultPolicy()))
}

func TestQualityScore_EmptyComplianceList(t *testing.T) {
	// Пустой чек-лист дает ноль от комплаенса, не деление на ноль
	bid := &Bid{}
	assert.Equal(t, 0.0, qualityScore(bid, DefaultPolicy()))

	// Но сертификаты все равно засчитываются
	bid.Certifications = []string{"ISO 9001", "ISO 14001"}
	assert.Equal(t, 20.0, qualityScore(bid, DefaultPolicy()))
}

func TestQualityScore_CertificationBonusCapped(t *testing.T) {
	bid := &Bid{
		Certifications: []string{"c1", "c2", "c3", "c4", "c5"},
	}

	// 5 сертификатов * 10 = 50, но бонус ограничен 30
	assert.Equal(t, 30.0, qualityScore(bid, DefaultPolicy()))
}

func TestQualityScore_CappedAt100(t *testing.T) {
	bid := &Bid{
		Compliance: []ComplianceItem{
			{Requirement: "voltage", Compliant: true},
		},
		Certifications: []string{"c1", "c2", "c3"},
	}

	// 70 + 30 = ровно 100
	assert.Equal(t, 100.0, qualityScore(bid, DefaultPolicy()))
}
