package metrics

import (
	"math"

	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"
)

// Tier is a coarse risk bucket.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Direction of a monthly series between its first and last point.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

// TrendSummary condenses a monthly series for a table cell.
type TrendSummary struct {
	Latest       int       `json:"latest"`
	Delta        int       `json:"delta"`
	DeltaPercent float64   `json:"deltaPercent"`
	Direction    Direction `json:"direction"`
}

// RegionRisk is one row of the Regions table.
type RegionRisk struct {
	RegionName        string       `json:"regionName"`
	ParcelCount       int          `json:"parcelCount"`
	DisputeCount      int          `json:"disputeCount"`
	TransferCount     int          `json:"transferCount"`
	VerificationRate  float64      `json:"verificationRate"`
	VerificationTone  Tone         `json:"verificationTone"`
	ActiveMortgages   int          `json:"activeMortgages"`
	AvgProcessingDays float64      `json:"avgProcessingDays"`
	FraudBlocked      int          `json:"fraudBlocked"`
	DisputeRatio      float64      `json:"disputeRatio"`
	RiskScore         int          `json:"riskScore"`
	RiskTier          Tier         `json:"riskTier"`
	Divergence        float64      `json:"divergence"`
	Transfers         TrendSummary `json:"transfers"`
	Disputes          TrendSummary `json:"disputes"`
}

type region struct {
	name              string
	parcels           int
	disputes          int
	transfers         int
	verification      float64
	activeMortgages   int
	avgProcessingDays float64
	fraudBlocked      int
	transfersTrend    []model.TrendPoint
	disputesTrend     []model.TrendPoint
}

func resolveRegion(r model.RegionRecord, p Policy) region {
	out := region{
		name:           r.RegionName,
		parcels:        max(r.ParcelCount, 0),
		disputes:       max(r.DisputeCount, 0),
		transfers:      max(r.TransferCount, 0),
		verification:   p.Defaults.VerificationRate,
		transfersTrend: r.TransfersTrend,
		disputesTrend:  r.DisputesTrend,
	}
	out.disputes = min(out.disputes, out.parcels)
	if r.VerificationRatePercent != nil {
		out.verification = math.Min(100, math.Max(0, finite(*r.VerificationRatePercent, p.Defaults.VerificationRate)))
	}
	if r.ActiveMortgages != nil {
		out.activeMortgages = max(*r.ActiveMortgages, 0)
	}
	if r.AvgProcessingDays != nil {
		out.avgProcessingDays = finite(*r.AvgProcessingDays, 0)
	}
	if r.FraudBlocked != nil {
		out.fraudBlocked = max(*r.FraudBlocked, 0)
	}
	return out
}

// DisputeRatio is disputes over parcels, zero for an empty region.
func DisputeRatio(disputes, parcels int) float64 {
	if parcels <= 0 {
		return 0
	}
	return float64(disputes) / float64(parcels)
}

// TierOf buckets a score; boundary values fall to the lower tier.
func TierOf(score int, p Policy) Tier {
	switch {
	case score > p.HighTierAbove:
		return TierHigh
	case score > p.MediumTierAbove:
		return TierMedium
	default:
		return TierLow
	}
}

// ComputeRegionRisk scores a region from its dispute ratio, its verification
// rate and the national bubble risk score. The divergence column uses the
// national growth figures and is therefore identical across regions.
func ComputeRegionRisk(r model.RegionRecord, globalRiskScore int, globalPriceGrowth, globalIncomeGrowth float64, p Policy) RegionRisk {
	reg := resolveRegion(r, p)
	globalRiskScore = clamp(globalRiskScore, 0, 100)

	ratio := DisputeRatio(reg.disputes, reg.parcels)
	raw := ratio*p.DisputeWeight +
		(100-reg.verification)*p.VerificationWeight +
		float64(globalRiskScore)*p.GlobalRiskWeight
	score := clamp(int(math.Round(finite(raw, 0))), 0, 100)

	return RegionRisk{
		RegionName:        reg.name,
		ParcelCount:       reg.parcels,
		DisputeCount:      reg.disputes,
		TransferCount:     reg.transfers,
		VerificationRate:  reg.verification,
		VerificationTone:  verificationTone(reg.verification, p),
		ActiveMortgages:   reg.activeMortgages,
		AvgProcessingDays: reg.avgProcessingDays,
		FraudBlocked:      reg.fraudBlocked,
		DisputeRatio:      round(ratio, 4),
		RiskScore:         score,
		RiskTier:          TierOf(score, p),
		Divergence:        Divergence(globalPriceGrowth, globalIncomeGrowth, p),
		Transfers:         summarizeTrend(reg.transfersTrend),
		Disputes:          summarizeTrend(reg.disputesTrend),
	}
}

// ComputeRegions scores every region against the resolved national snapshot.
func ComputeRegions(regions []model.RegionRecord, s model.BubbleRiskSnapshot, p Policy) []RegionRisk {
	b := resolveBubble(s, p)
	out := make([]RegionRisk, 0, len(regions))
	for _, r := range regions {
		out = append(out, ComputeRegionRisk(r, b.riskScore, b.priceGrowth, b.incomeGrowth, p))
	}
	return out
}

func summarizeTrend(points []model.TrendPoint) TrendSummary {
	if len(points) == 0 {
		return TrendSummary{Direction: Flat}
	}
	first := points[0].Value
	last := points[len(points)-1].Value
	delta := last - first

	dir := Flat
	if delta > 0 {
		dir = Up
	} else if delta < 0 {
		dir = Down
	}
	dp := 0.0
	if first != 0 {
		dp = round(float64(delta)/float64(first)*100, 2)
	}
	return TrendSummary{Latest: last, Delta: delta, DeltaPercent: dp, Direction: dir}
}
