package metrics

import (
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"
	"github.com/shopspring/decimal"
)

// MortgageRow is one row of the Mortgages table.
type MortgageRow struct {
	MortgageID     string          `json:"mortgageId"`
	ParcelID       string          `json:"parcelId"`
	Region         string          `json:"region"`
	Bank           string          `json:"bank"`
	Status         string          `json:"status"`
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	Remaining      decimal.Decimal `json:"remaining"`
	Monthly        decimal.Decimal `json:"monthly"`
	HasMonthly     bool            `json:"hasMonthly"`
	PaidPercent    float64         `json:"paidPercent"`
	StartDate      model.Date      `json:"startDate"`
}

// MortgageKPIs holds the cards above the Mortgages table.
type MortgageKPIs struct {
	Total              int             `json:"total"`
	RegisteredTotal    int             `json:"registeredTotal"`
	ByStatus           map[string]int  `json:"byStatus"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	DefaultRate        float64         `json:"defaultRate"`
	AvgMonthlyPayment  decimal.Decimal `json:"avgMonthlyPayment"`
}

// ComputeMortgageRow resolves a mortgage into its table row. A missing
// monthly payment is shown as zero with HasMonthly unset.
func ComputeMortgageRow(m model.MortgageRecord) MortgageRow {
	row := MortgageRow{
		MortgageID:     m.MortgageID,
		ParcelID:       m.ParcelID,
		Region:         m.Region,
		Bank:           m.Bank,
		Status:         m.Status,
		OriginalAmount: m.OriginalAmount,
		Remaining:      m.Remaining,
		Monthly:        decimal.Zero,
		StartDate:      m.StartDate,
	}
	if m.Monthly.Valid {
		row.Monthly = m.Monthly.Decimal
		row.HasMonthly = true
	}
	if m.OriginalAmount.IsPositive() {
		paid := m.OriginalAmount.Sub(m.Remaining).Div(m.OriginalAmount).Mul(decimal.NewFromInt(100))
		pct, _ := paid.Round(1).Float64()
		row.PaidPercent = min(100, max(0, pct))
	}
	return row
}

// ComputeMortgageRows resolves each mortgage, preserving order.
func ComputeMortgageRows(mortgages []model.MortgageRecord) []MortgageRow {
	rows := make([]MortgageRow, 0, len(mortgages))
	for _, m := range mortgages {
		rows = append(rows, ComputeMortgageRow(m))
	}
	return rows
}

// ComputeMortgageKPIs aggregates rows. registered is the registry-wide count
// when known; a non-positive value falls back to len(rows).
func ComputeMortgageKPIs(rows []MortgageRow, registered int) MortgageKPIs {
	k := MortgageKPIs{
		Total: len(rows),
		ByStatus: map[string]int{
			model.MortgageActive:      0,
			model.MortgagePaid:        0,
			model.MortgageDefaulted:   0,
			model.MortgageForeclosure: 0,
		},
		OutstandingBalance: decimal.Zero,
		AvgMonthlyPayment:  decimal.Zero,
	}
	k.RegisteredTotal = registered
	if registered <= 0 {
		k.RegisteredTotal = len(rows)
	}

	monthlySum := decimal.Zero
	monthlyCount := 0
	for _, r := range rows {
		k.ByStatus[r.Status]++
		if r.Status != model.MortgagePaid {
			k.OutstandingBalance = k.OutstandingBalance.Add(r.Remaining)
		}
		if r.HasMonthly {
			monthlySum = monthlySum.Add(r.Monthly)
			monthlyCount++
		}
	}
	troubled := k.ByStatus[model.MortgageDefaulted] + k.ByStatus[model.MortgageForeclosure]
	k.DefaultRate = round(percent(troubled, k.Total), 1)
	if monthlyCount > 0 {
		k.AvgMonthlyPayment = monthlySum.Div(decimal.NewFromInt(int64(monthlyCount))).Round(2)
	}
	return k
}
