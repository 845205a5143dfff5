package metrics

import (
	"strconv"
	"strings"
)

// Table is a CSV-ready projection with a fixed column order.
type Table struct {
	Header []string
	Rows   [][]string
}

// RegionsTable projects scored regions in Regions page column order.
func RegionsTable(rows []RegionRisk) Table {
	t := Table{Header: []string{"Region", "Parcels", "Disputes", "Transfers", "Verification %", "Risk Score", "Risk Tier"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.RegionName,
			strconv.Itoa(r.ParcelCount),
			strconv.Itoa(r.DisputeCount),
			strconv.Itoa(r.TransferCount),
			strconv.FormatFloat(r.VerificationRate, 'f', 1, 64),
			strconv.Itoa(r.RiskScore),
			string(r.RiskTier),
		})
	}
	return t
}

// ComplianceTable projects compliance rows; flags are joined with "; ".
func ComplianceTable(rows []ComplianceRow) Table {
	t := Table{Header: []string{"Parcel ID", "Status", "Flags", "Zoning", "Environmental", "Occupancy", "Mortgage", "Blockchain Hash"}}
	for _, r := range rows {
		mortgage := "No"
		if r.HasMortgage {
			mortgage = "Yes"
		}
		t.Rows = append(t.Rows, []string{
			r.ParcelID,
			r.StatusKey,
			strings.Join(r.Flags, "; "),
			r.Zoning,
			r.Environmental,
			r.Occupancy,
			mortgage,
			r.BlockchainHash,
		})
	}
	return t
}

// MortgagesTable projects mortgage rows with amounts fixed to two decimals
// and an empty cell for a missing monthly payment.
func MortgagesTable(rows []MortgageRow) Table {
	t := Table{Header: []string{"Mortgage ID", "Parcel ID", "Region", "Bank", "Status", "Original Amount", "Remaining", "Monthly", "Start Date"}}
	for _, r := range rows {
		monthly := ""
		if r.HasMonthly {
			monthly = r.Monthly.StringFixed(2)
		}
		t.Rows = append(t.Rows, []string{
			r.MortgageID,
			r.ParcelID,
			r.Region,
			r.Bank,
			r.Status,
			r.OriginalAmount.StringFixed(2),
			r.Remaining.StringFixed(2),
			monthly,
			r.StartDate.String(),
		})
	}
	return t
}
