package model

import "github.com/shopspring/decimal"

// TrendPoint is one month of a region's monthly series.
type TrendPoint struct {
	Month string `json:"month"`
	Value int    `json:"value"`
}

// RegionRecord is the per-region aggregate returned by the registry backend.
// Pointer fields are optional upstream and resolved against policy defaults.
type RegionRecord struct {
	RegionName              string       `json:"regionName"`
	ParcelCount             int          `json:"parcelCount"`
	DisputeCount            int          `json:"disputeCount"`
	TransferCount           int          `json:"transferCount"`
	VerificationRatePercent *float64     `json:"verificationRatePercent,omitempty"`
	ActiveMortgages         *int         `json:"activeMortgages,omitempty"`
	AvgProcessingDays       *float64     `json:"avgProcessingDays,omitempty"`
	FraudBlocked            *int         `json:"fraudBlocked,omitempty"`
	TransfersTrend          []TrendPoint `json:"transfersTrend,omitempty"`
	DisputesTrend           []TrendPoint `json:"disputesTrend,omitempty"`
}

// BubbleTrend tracks price vs income growth for a single month.
type BubbleTrend struct {
	Month        string  `json:"month"`
	PriceGrowth  float64 `json:"priceGrowth"`
	IncomeGrowth float64 `json:"incomeGrowth"`
}

// BubbleRiskSnapshot is the national housing-bubble indicator set.
type BubbleRiskSnapshot struct {
	RiskScore                  *int          `json:"riskScore,omitempty"`
	CurrentPriceGrowthPercent  *float64      `json:"currentPriceGrowthPercent,omitempty"`
	CurrentIncomeGrowthPercent *float64      `json:"currentIncomeGrowthPercent,omitempty"`
	GrowthGapPercent           *float64      `json:"growthGapPercent,omitempty"`
	Trend                      string        `json:"trend,omitempty"` // "increasing" or "stable"
	MonthlyTrends              []BubbleTrend `json:"monthlyTrends,omitempty"`
}

// Restriction is an encumbrance registered against a parcel.
type Restriction struct {
	Type        string `json:"type"` // mortgage, lien, easement, zoning, environmental, legal
	Description string `json:"description,omitempty"`
}

// ParcelComplianceRecord is the legal-cleanliness view of one parcel.
type ParcelComplianceRecord struct {
	ParcelID       string        `json:"parcelId"`
	LegalStatusRaw string        `json:"legalStatusRaw"` // clean, pending, disputed, litigation
	Restrictions   []Restriction `json:"restrictions,omitempty"`
	HasMortgage    bool          `json:"hasMortgage"`
	BlockchainHash string        `json:"blockchainHash"`
	Address        string        `json:"address,omitempty"`
	Region         string        `json:"region,omitempty"`
}

// Mortgage statuses as reported by the registry.
const (
	MortgageActive      = "Active"
	MortgagePaid        = "Paid"
	MortgageDefaulted   = "Defaulted"
	MortgageForeclosure = "Foreclosure"
)

// MortgageRecord is a registered mortgage on a parcel.
type MortgageRecord struct {
	MortgageID     string              `json:"mortgageId"`
	ParcelID       string              `json:"parcelId"`
	Region         string              `json:"region"`
	Bank           string              `json:"bank"`
	Status         string              `json:"status"`
	OriginalAmount decimal.Decimal     `json:"originalAmount"`
	Remaining      decimal.Decimal     `json:"remaining"`
	Monthly        decimal.NullDecimal `json:"monthly"`
	StartDate      Date                `json:"startDate"`
}
