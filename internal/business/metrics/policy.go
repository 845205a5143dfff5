package metrics

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Defaults are the per-field fallbacks applied when upstream values are absent.
type Defaults struct {
	RiskScore        int     `json:"riskScore" yaml:"riskScore"`
	PriceGrowth      float64 `json:"priceGrowth" yaml:"priceGrowth"`
	IncomeGrowth     float64 `json:"incomeGrowth" yaml:"incomeGrowth"`
	GrowthGap        float64 `json:"growthGap" yaml:"growthGap"`
	Trend            string  `json:"trend" yaml:"trend"`
	VerificationRate float64 `json:"verificationRate" yaml:"verificationRate"`
}

// Policy holds every threshold, weight and fallback used by the aggregator.
type Policy struct {
	DisputeWeight      float64 `json:"disputeWeight" yaml:"disputeWeight"`
	VerificationWeight float64 `json:"verificationWeight" yaml:"verificationWeight"`
	GlobalRiskWeight   float64 `json:"globalRiskWeight" yaml:"globalRiskWeight"`
	HighTierAbove      int     `json:"highTierAbove" yaml:"highTierAbove"`
	MediumTierAbove    int     `json:"mediumTierAbove" yaml:"mediumTierAbove"`

	FallbackDivergence     float64 `json:"fallbackDivergence" yaml:"fallbackDivergence"`
	DivergenceDangerAt     float64 `json:"divergenceDangerAt" yaml:"divergenceDangerAt"`
	PriceGrowthDangerAbove float64 `json:"priceGrowthDangerAbove" yaml:"priceGrowthDangerAbove"`
	GrowthGapDangerAbove   float64 `json:"growthGapDangerAbove" yaml:"growthGapDangerAbove"`
	RiskDangerAbove        int     `json:"riskDangerAbove" yaml:"riskDangerAbove"`
	RiskWarnAbove          int     `json:"riskWarnAbove" yaml:"riskWarnAbove"`
	Forecast6mMultiplier   float64 `json:"forecast6mMultiplier" yaml:"forecast6mMultiplier"`
	Forecast12mMultiplier  float64 `json:"forecast12mMultiplier" yaml:"forecast12mMultiplier"`

	VerificationGoodAt    float64 `json:"verificationGoodAt" yaml:"verificationGoodAt"`
	VerificationNeutralAt float64 `json:"verificationNeutralAt" yaml:"verificationNeutralAt"`

	Defaults Defaults `json:"defaults" yaml:"defaults"`
}

// DefaultPolicy returns the production thresholds.
func DefaultPolicy() Policy {
	return Policy{
		DisputeWeight:          5000,
		VerificationWeight:     0.6,
		GlobalRiskWeight:       0.3,
		HighTierAbove:          65,
		MediumTierAbove:        45,
		FallbackDivergence:     4.2,
		DivergenceDangerAt:     3,
		PriceGrowthDangerAbove: 15,
		GrowthGapDangerAbove:   10,
		RiskDangerAbove:        70,
		RiskWarnAbove:          50,
		Forecast6mMultiplier:   1.05,
		Forecast12mMultiplier:  1.12,
		VerificationGoodAt:     90,
		VerificationNeutralAt:  75,
		Defaults: Defaults{
			RiskScore:        72,
			PriceGrowth:      18.4,
			IncomeGrowth:     4.4,
			GrowthGap:        14.0,
			Trend:            TrendIncreasing,
			VerificationRate: 0,
		},
	}
}

// ParsePolicy overlays a YAML document on DefaultPolicy. Keys absent from
// the document keep their default values.
func ParsePolicy(data []byte) (Policy, error) {
	p := DefaultPolicy()
	if len(data) == 0 {
		return p, nil
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// Validate rejects tier and tone thresholds that would make buckets unreachable.
func (p Policy) Validate() error {
	if p.MediumTierAbove > p.HighTierAbove {
		return fmt.Errorf("policy: mediumTierAbove (%d) exceeds highTierAbove (%d)", p.MediumTierAbove, p.HighTierAbove)
	}
	if p.RiskWarnAbove > p.RiskDangerAbove {
		return fmt.Errorf("policy: riskWarnAbove (%d) exceeds riskDangerAbove (%d)", p.RiskWarnAbove, p.RiskDangerAbove)
	}
	if p.VerificationNeutralAt > p.VerificationGoodAt {
		return fmt.Errorf("policy: verificationNeutralAt (%.1f) exceeds verificationGoodAt (%.1f)", p.VerificationNeutralAt, p.VerificationGoodAt)
	}
	switch p.Defaults.Trend {
	case TrendIncreasing, TrendStable:
	default:
		return fmt.Errorf("policy: unknown default trend %q", p.Defaults.Trend)
	}
	return nil
}
