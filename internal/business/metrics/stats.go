package metrics

// Overview is the landing-page summary across all regions.
type Overview struct {
	TotalParcels         int        `json:"totalParcels"`
	TotalDisputes        int        `json:"totalDisputes"`
	TotalTransfers       int        `json:"totalTransfers"`
	ActiveMortgages      int        `json:"activeMortgages"`
	RegisteredMortgages  int        `json:"registeredMortgages"`
	FraudBlocked         int        `json:"fraudBlocked"`
	AvgVerificationRate  float64    `json:"avgVerificationRate"`
	NationalDisputeRatio float64    `json:"nationalDisputeRatio"`
	HighRiskRegions      int        `json:"highRiskRegions"`
	RegionCount          int        `json:"regionCount"`
	Bubble               BubbleKPIs `json:"bubble"`
	TopRiskRegion        string     `json:"topRiskRegion,omitempty"`
}

// Counts carries the registry-wide totals fetched separately from regions.
// A nil field means the fetch failed or was not issued.
type Counts struct {
	Transfers *int
	Mortgages *int
}

// AggregateOverview reduces scored regions into the landing-page KPIs.
// Explicit counts take precedence over the region sums.
func AggregateOverview(regions []RegionRisk, bubble BubbleKPIs, counts Counts) Overview {
	o := Overview{Bubble: bubble, RegionCount: len(regions)}

	var verificationSum float64
	topScore := -1
	for _, r := range regions {
		o.TotalParcels += r.ParcelCount
		o.TotalDisputes += r.DisputeCount
		o.TotalTransfers += r.TransferCount
		o.ActiveMortgages += r.ActiveMortgages
		o.FraudBlocked += r.FraudBlocked
		verificationSum += r.VerificationRate
		if r.RiskTier == TierHigh {
			o.HighRiskRegions++
		}
		if r.RiskScore > topScore {
			topScore = r.RiskScore
			o.TopRiskRegion = r.RegionName
		}
	}

	if len(regions) > 0 {
		o.AvgVerificationRate = round(verificationSum/float64(len(regions)), 1)
	}
	o.NationalDisputeRatio = round(DisputeRatio(o.TotalDisputes, o.TotalParcels), 4)

	if counts.Transfers != nil {
		o.TotalTransfers = *counts.Transfers
	}
	o.RegisteredMortgages = o.ActiveMortgages
	if counts.Mortgages != nil {
		o.RegisteredMortgages = *counts.Mortgages
	}
	return o
}
