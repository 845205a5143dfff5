package http

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/business/metrics"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"
)

// queryOr returns the trimmed query value, or def when it is absent or blank.
func queryOr(c *gin.Context, key, def string) string {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		return v
	}
	return def
}

func regionFilterFromQuery(c *gin.Context) metrics.RegionFilter {
	f := metrics.DefaultRegionFilter()
	f.Query = c.Query("q")
	f.Tier = queryOr(c, "tier", f.Tier)
	return f
}

func sortFromQuery(c *gin.Context) (string, bool) {
	return strings.TrimSpace(c.Query("sort")), strings.EqualFold(c.Query("order"), "desc")
}

func complianceFilterFromQuery(c *gin.Context) metrics.ComplianceFilter {
	f := metrics.DefaultComplianceFilter()
	f.Query = c.Query("q")
	f.Status = queryOr(c, "status", f.Status)
	f.Region = queryOr(c, "region", f.Region)
	f.Flags = queryOr(c, "flags", f.Flags)
	return f
}

func mortgageFilterFromQuery(c *gin.Context) (metrics.MortgageFilter, error) {
	f := metrics.DefaultMortgageFilter()
	f.Query = c.Query("q")
	f.Status = queryOr(c, "status", f.Status)
	f.Region = queryOr(c, "region", f.Region)
	f.Bank = queryOr(c, "bank", f.Bank)

	from, err := model.ParseDate(strings.TrimSpace(c.Query("from")))
	if err != nil {
		return metrics.MortgageFilter{}, fmt.Errorf("invalid from date: %w", err)
	}
	to, err := model.ParseDate(strings.TrimSpace(c.Query("to")))
	if err != nil {
		return metrics.MortgageFilter{}, fmt.Errorf("invalid to date: %w", err)
	}
	f.From, f.To = from, to
	return f, nil
}
