package metrics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Region sort keys.
const (
	SortByName         = "name"
	SortByParcels      = "parcels"
	SortByDisputes     = "disputes"
	SortByTransfers    = "transfers"
	SortByVerification = "verification"
	SortByRisk         = "risk"
)

func regionComparator(key string) (func(a, b RegionRisk) int, bool) {
	switch key {
	case SortByName:
		return func(a, b RegionRisk) int { return strings.Compare(a.RegionName, b.RegionName) }, true
	case SortByParcels:
		return func(a, b RegionRisk) int { return cmp.Compare(a.ParcelCount, b.ParcelCount) }, true
	case SortByDisputes:
		return func(a, b RegionRisk) int { return cmp.Compare(a.DisputeCount, b.DisputeCount) }, true
	case SortByTransfers:
		return func(a, b RegionRisk) int { return cmp.Compare(a.TransferCount, b.TransferCount) }, true
	case SortByVerification:
		return func(a, b RegionRisk) int { return cmp.Compare(a.VerificationRate, b.VerificationRate) }, true
	case SortByRisk:
		return func(a, b RegionRisk) int { return cmp.Compare(a.RiskScore, b.RiskScore) }, true
	}
	return nil, false
}

// SortRegions returns a stably sorted copy. An empty key keeps input order.
func SortRegions(rows []RegionRisk, key string, desc bool) ([]RegionRisk, error) {
	out := slices.Clone(rows)
	if out == nil {
		out = []RegionRisk{}
	}
	if key == "" {
		return out, nil
	}
	compare, ok := regionComparator(key)
	if !ok {
		return nil, fmt.Errorf("unknown sort key %q", key)
	}
	slices.SortStableFunc(out, func(a, b RegionRisk) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out, nil
}
