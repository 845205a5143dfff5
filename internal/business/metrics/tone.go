package metrics

import "math"

// Tone is the severity a UI applies to a metric.
type Tone string

const (
	ToneDanger  Tone = "danger"
	ToneWarn    Tone = "warn"
	ToneNeutral Tone = "neutral"
	ToneGood    Tone = "good"
)

// Bubble trend directions.
const (
	TrendIncreasing = "increasing"
	TrendStable     = "stable"
)

func divergenceTone(ratio float64, p Policy) Tone {
	if ratio >= p.DivergenceDangerAt {
		return ToneDanger
	}
	return ToneWarn
}

func priceGrowthTone(growth float64, p Policy) Tone {
	if growth > p.PriceGrowthDangerAbove {
		return ToneDanger
	}
	return ToneWarn
}

func growthGapTone(gap float64, p Policy) Tone {
	if gap > p.GrowthGapDangerAbove {
		return ToneDanger
	}
	return ToneWarn
}

func riskTone(score int, p Policy) Tone {
	switch {
	case score > p.RiskDangerAbove:
		return ToneDanger
	case score > p.RiskWarnAbove:
		return ToneWarn
	default:
		return ToneNeutral
	}
}

func verificationTone(rate float64, p Policy) Tone {
	switch {
	case rate >= p.VerificationGoodAt:
		return ToneGood
	case rate >= p.VerificationNeutralAt:
		return ToneNeutral
	default:
		return ToneWarn
	}
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// finite replaces NaN and ±Inf with fallback.
func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// percent returns part/whole*100, or 0 when whole is zero.
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
