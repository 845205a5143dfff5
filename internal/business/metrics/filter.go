package metrics

import (
	"errors"
	"strings"

	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/util"
)

// All is the sentinel that disables a categorical filter.
const All = "all"

// Flag presence options for the compliance table.
const (
	FlagsAny  = "any"
	FlagsNone = "none"
)

// ErrInvalidDateRange is returned when a date range ends before it starts.
var ErrInvalidDateRange = errors.New("date range end is before start")

// ComplianceFilter is the Legal Cleanliness page filter state.
type ComplianceFilter struct {
	Query  string `json:"q"`
	Status string `json:"status"`
	Region string `json:"region"`
	Flags  string `json:"flags"`
}

// MortgageFilter is the Mortgages page filter state. Zero dates are open bounds.
type MortgageFilter struct {
	Query  string     `json:"q"`
	Status string     `json:"status"`
	Region string     `json:"region"`
	Bank   string     `json:"bank"`
	From   model.Date `json:"from"`
	To     model.Date `json:"to"`
}

// RegionFilter is the Regions page filter state.
type RegionFilter struct {
	Query string `json:"q"`
	Tier  string `json:"tier"`
}

// DefaultComplianceFilter matches every parcel.
func DefaultComplianceFilter() ComplianceFilter {
	return ComplianceFilter{Status: All, Region: All, Flags: All}
}

// DefaultMortgageFilter matches every mortgage with no date bounds.
func DefaultMortgageFilter() MortgageFilter {
	return MortgageFilter{Status: All, Region: All, Bank: All}
}

// DefaultRegionFilter matches every region.
func DefaultRegionFilter() RegionFilter {
	return RegionFilter{Tier: All}
}

// Validate checks the date range.
func (f MortgageFilter) Validate() error {
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From.Time) {
		return ErrInvalidDateRange
	}
	return nil
}

// FilterRows keeps the rows for which keep returns true, in their original order.
// The result is never nil.
func FilterRows[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterCompliance applies a ComplianceFilter.
func FilterCompliance(rows []ComplianceRow, f ComplianceFilter) []ComplianceRow {
	q := util.FoldText(f.Query)
	return FilterRows(rows, func(r ComplianceRow) bool {
		return matchesQuery(q, r.ParcelID, r.Address, r.BlockchainHash, strings.Join(r.Flags, " ")) &&
			matchesCategory(f.Status, r.StatusKey) &&
			matchesCategory(f.Region, r.Region) &&
			matchesFlags(f.Flags, r.Flags)
	})
}

// FilterMortgages applies a MortgageFilter. Rows without a start date are
// excluded whenever either date bound is set.
func FilterMortgages(rows []MortgageRow, f MortgageFilter) []MortgageRow {
	q := util.FoldText(f.Query)
	return FilterRows(rows, func(r MortgageRow) bool {
		return matchesQuery(q, r.MortgageID, r.ParcelID, r.Bank, r.Region) &&
			matchesCategory(f.Status, r.Status) &&
			matchesCategory(f.Region, r.Region) &&
			matchesCategory(f.Bank, r.Bank) &&
			inRange(r.StartDate, f.From, f.To)
	})
}

// FilterRegions applies a RegionFilter.
func FilterRegions(rows []RegionRisk, f RegionFilter) []RegionRisk {
	q := util.FoldText(f.Query)
	return FilterRows(rows, func(r RegionRisk) bool {
		return matchesQuery(q, r.RegionName) && matchesCategory(f.Tier, string(r.RiskTier))
	})
}

// matchesQuery expects q already folded.
func matchesQuery(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(util.FoldText(f), q) {
			return true
		}
	}
	return false
}

func matchesCategory(want, got string) bool {
	if want == "" || want == All {
		return true
	}
	return want == got
}

func matchesFlags(mode string, flags []string) bool {
	switch mode {
	case FlagsAny:
		return len(flags) > 0
	case FlagsNone:
		return len(flags) == 0
	default:
		return true
	}
}

func inRange(d, from, to model.Date) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if d.IsZero() {
		return false
	}
	if !from.IsZero() && d.Before(from.Time) {
		return false
	}
	if !to.IsZero() && d.After(to.Time) {
		return false
	}
	return true
}
