package http

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/business/dashboard"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/business/metrics"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/util"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// DataStatusHeader is "degraded" when any section fell back to cached or default data.
const DataStatusHeader = "X-Data-Status"

// Router wires HTTP handlers.
type Router struct {
	dashboard *dashboard.Service
	origins   string
}

// NewRouter builds the API. allowedOrigins is a comma-separated CORS
// allow-list; "*" opens it to every origin and an empty list allows none.
func NewRouter(svc *dashboard.Service, allowedOrigins string) *gin.Engine {
	r := &Router{
		dashboard: svc,
		origins:   allowedOrigins,
	}

	router := gin.New()
	router.Use(requestIDMiddleware(), gin.Logger(), gin.Recovery(), r.corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/overview", r.getOverview)
		api.GET("/bubble-risk", r.getBubbleRisk)
		api.GET("/regions", r.listRegions)
		api.GET("/regions/export", r.exportRegions)
		api.GET("/compliance", r.listCompliance)
		api.GET("/compliance/export", r.exportCompliance)
		api.GET("/mortgages", r.listMortgages)
		api.GET("/mortgages/export", r.exportMortgages)
		api.GET("/policy", r.getPolicy)
	}

	return router
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := ""
		for _, o := range trimmed {
			if o == "*" {
				allowed = "*"
				break
			}
			if o == origin {
				allowed = origin
				break
			}
		}
		if allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			if allowed != "*" {
				c.Header("Vary", "Origin")
			}
		}
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
		c.Header("Access-Control-Expose-Headers", RequestIDHeader+", "+DataStatusHeader)
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *Router) getOverview(c *gin.Context) {
	view := r.dashboard.Overview(c.Request.Context())
	setDataStatus(c, view.Sections)
	c.JSON(http.StatusOK, view)
}

func (r *Router) getBubbleRisk(c *gin.Context) {
	view := r.dashboard.BubbleRisk(c.Request.Context())
	setDataStatus(c, view.Sections)
	c.JSON(http.StatusOK, view)
}

func (r *Router) listRegions(c *gin.Context) {
	view, ok := r.regions(c)
	if !ok {
		return
	}
	setDataStatus(c, view.Sections)
	c.JSON(http.StatusOK, view)
}

func (r *Router) exportRegions(c *gin.Context) {
	view, ok := r.regions(c)
	if !ok {
		return
	}
	setDataStatus(c, view.Sections)
	writeCSV(c, "regions.csv", metrics.RegionsTable(view.Rows))
}

func (r *Router) regions(c *gin.Context) (dashboard.RegionsView, bool) {
	filter := regionFilterFromQuery(c)
	sortKey, desc := sortFromQuery(c)
	view, err := r.dashboard.Regions(c.Request.Context(), filter, sortKey, desc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return dashboard.RegionsView{}, false
	}
	return view, true
}

func (r *Router) listCompliance(c *gin.Context) {
	view := r.dashboard.Compliance(c.Request.Context(), complianceFilterFromQuery(c))
	setDataStatus(c, view.Sections)
	c.JSON(http.StatusOK, view)
}

func (r *Router) exportCompliance(c *gin.Context) {
	view := r.dashboard.Compliance(c.Request.Context(), complianceFilterFromQuery(c))
	setDataStatus(c, view.Sections)
	writeCSV(c, "compliance.csv", metrics.ComplianceTable(view.Rows))
}

func (r *Router) listMortgages(c *gin.Context) {
	view, ok := r.mortgages(c)
	if !ok {
		return
	}
	setDataStatus(c, view.Sections)
	c.JSON(http.StatusOK, view)
}

func (r *Router) exportMortgages(c *gin.Context) {
	view, ok := r.mortgages(c)
	if !ok {
		return
	}
	setDataStatus(c, view.Sections)
	writeCSV(c, "mortgages.csv", metrics.MortgagesTable(view.Rows))
}

func (r *Router) mortgages(c *gin.Context) (dashboard.MortgagesView, bool) {
	filter, err := mortgageFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return dashboard.MortgagesView{}, false
	}
	view, err := r.dashboard.Mortgages(c.Request.Context(), filter)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, metrics.ErrInvalidDateRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return dashboard.MortgagesView{}, false
	}
	return view, true
}

func (r *Router) getPolicy(c *gin.Context) {
	c.JSON(http.StatusOK, r.dashboard.Policy())
}

func setDataStatus(c *gin.Context, sections dashboard.Sections) {
	if sections.Degraded() {
		c.Header(DataStatusHeader, "degraded")
		return
	}
	c.Header(DataStatusHeader, "live")
}

// writeCSV renders the table into memory so the response can carry an ETag.
func writeCSV(c *gin.Context, filename string, t metrics.Table) {
	var buf bytes.Buffer
	if err := util.WriteCSV(&buf, t.Header, t.Rows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	etag := `"` + util.HashBytes(buf.Bytes()) + `"`
	c.Header("ETag", etag)
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// etagMatches applies the weak comparison used for If-None-Match: any listed
// validator equal to etag, with or without the W/ prefix, or "*".
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
