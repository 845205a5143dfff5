package metrics

import "github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"

// BubbleKPIs is the view-model of the Bubble Risk page.
type BubbleKPIs struct {
	RiskScore        int     `json:"riskScore"`
	RiskTone         Tone    `json:"riskTone"`
	PriceGrowth      float64 `json:"priceGrowth"`
	PriceGrowthTone  Tone    `json:"priceGrowthTone"`
	IncomeGrowth     float64 `json:"incomeGrowth"`
	GrowthGap        float64 `json:"growthGap"`
	GrowthGapTone    Tone    `json:"growthGapTone"`
	DivergenceRatio  float64 `json:"divergenceRatio"`
	DivergenceTone   Tone    `json:"divergenceTone"`
	Trend            string  `json:"trend"`
	Forecast6Months  int     `json:"forecast6Months"`
	Forecast12Months int     `json:"forecast12Months"`

	Monthly []BubbleMonth `json:"monthly"`
}

// BubbleMonth is one chart point with the derived gap and divergence.
type BubbleMonth struct {
	Month        string  `json:"month"`
	PriceGrowth  float64 `json:"priceGrowth"`
	IncomeGrowth float64 `json:"incomeGrowth"`
	Gap          float64 `json:"gap"`
	Divergence   float64 `json:"divergence"`
}

type bubble struct {
	riskScore    int
	priceGrowth  float64
	incomeGrowth float64
	growthGap    float64
	trend        string
	monthly      []model.BubbleTrend
}

func resolveBubble(s model.BubbleRiskSnapshot, p Policy) bubble {
	d := p.Defaults
	b := bubble{
		riskScore:    d.RiskScore,
		priceGrowth:  d.PriceGrowth,
		incomeGrowth: d.IncomeGrowth,
		growthGap:    d.GrowthGap,
		trend:        d.Trend,
		monthly:      s.MonthlyTrends,
	}
	if s.RiskScore != nil {
		b.riskScore = clamp(*s.RiskScore, 0, 100)
	}
	if s.CurrentPriceGrowthPercent != nil {
		b.priceGrowth = finite(*s.CurrentPriceGrowthPercent, d.PriceGrowth)
	}
	if s.CurrentIncomeGrowthPercent != nil {
		b.incomeGrowth = finite(*s.CurrentIncomeGrowthPercent, d.IncomeGrowth)
	}
	if s.GrowthGapPercent != nil {
		b.growthGap = finite(*s.GrowthGapPercent, d.GrowthGap)
	}
	switch s.Trend {
	case TrendIncreasing, TrendStable:
		b.trend = s.Trend
	}
	return b
}

// Divergence returns price growth over income growth rounded to one decimal,
// or the policy fallback when income growth is not positive.
func Divergence(priceGrowth, incomeGrowth float64, p Policy) float64 {
	if incomeGrowth <= 0 {
		return p.FallbackDivergence
	}
	return finite(round(priceGrowth/incomeGrowth, 1), p.FallbackDivergence)
}

// ComputeBubbleKPIs derives the Bubble Risk KPI cards and chart series.
func ComputeBubbleKPIs(s model.BubbleRiskSnapshot, p Policy) BubbleKPIs {
	b := resolveBubble(s, p)
	div := Divergence(b.priceGrowth, b.incomeGrowth, p)

	out := BubbleKPIs{
		RiskScore:        b.riskScore,
		RiskTone:         riskTone(b.riskScore, p),
		PriceGrowth:      b.priceGrowth,
		PriceGrowthTone:  priceGrowthTone(b.priceGrowth, p),
		IncomeGrowth:     b.incomeGrowth,
		GrowthGap:        b.growthGap,
		GrowthGapTone:    growthGapTone(b.growthGap, p),
		DivergenceRatio:  div,
		DivergenceTone:   divergenceTone(div, p),
		Trend:            b.trend,
		Forecast6Months:  forecast(b.riskScore, p.Forecast6mMultiplier),
		Forecast12Months: forecast(b.riskScore, p.Forecast12mMultiplier),
		Monthly:          make([]BubbleMonth, 0, len(b.monthly)),
	}
	for _, m := range b.monthly {
		out.Monthly = append(out.Monthly, BubbleMonth{
			Month:        m.Month,
			PriceGrowth:  m.PriceGrowth,
			IncomeGrowth: m.IncomeGrowth,
			Gap:          round(m.PriceGrowth-m.IncomeGrowth, 1),
			Divergence:   Divergence(m.PriceGrowth, m.IncomeGrowth, p),
		})
	}
	return out
}

func forecast(score int, multiplier float64) int {
	f := int(round(float64(score)*multiplier, 0))
	if f > 100 {
		return 100
	}
	if f < 0 {
		return 0
	}
	return f
}
