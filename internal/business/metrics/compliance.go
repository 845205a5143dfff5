package metrics

import "github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"

// Compliance statuses after classification.
const (
	StatusVerified   = "verified"
	StatusPending    = "pending"
	StatusDisputed   = "disputed"
	StatusLitigation = "litigation"
)

// Signal values for the zoning/environmental/occupancy columns.
const (
	SignalOK   = "ok"
	SignalWarn = "warn"
	SignalBad  = "bad"
)

var restrictionLabels = map[string]string{
	"mortgage":      "Active mortgage",
	"lien":          "Lien registered",
	"easement":      "Easement",
	"zoning":        "Zoning restriction",
	"environmental": "Environmental restriction",
	"legal":         "Legal encumbrance",
}

// ComplianceRow is one row of the Legal Cleanliness table.
type ComplianceRow struct {
	ParcelID       string   `json:"parcelId"`
	StatusKey      string   `json:"statusKey"`
	Flags          []string `json:"flags"`
	Zoning         string   `json:"zoning"`
	Environmental  string   `json:"environmental"`
	Occupancy      string   `json:"occupancy"`
	HasMortgage    bool     `json:"hasMortgage"`
	BlockchainHash string   `json:"blockchainHash"`
	Address        string   `json:"address,omitempty"`
	Region         string   `json:"region,omitempty"`
}

// ComplianceSummary holds the KPI cards above the compliance table.
type ComplianceSummary struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"byStatus"`
	CleanRate    float64        `json:"cleanRate"`
	WithFlags    int            `json:"withFlags"`
	WithMortgage int            `json:"withMortgage"`
}

// StatusKey maps the registry's "clean" to "verified"; other values pass through.
func StatusKey(raw string) string {
	if raw == "clean" {
		return StatusVerified
	}
	return raw
}

// RestrictionLabel resolves a restriction to display text: the fixed label
// for a known type, else its description, else the raw type.
func RestrictionLabel(r model.Restriction) string {
	if label, ok := restrictionLabels[r.Type]; ok {
		return label
	}
	if r.Description != "" {
		return r.Description
	}
	return r.Type
}

// ClassifyParcelCompliance projects a parcel into its table row.
// Occupancy has no backing restriction type yet and is always "ok".
func ClassifyParcelCompliance(p model.ParcelComplianceRecord) ComplianceRow {
	row := ComplianceRow{
		ParcelID:       p.ParcelID,
		StatusKey:      StatusKey(p.LegalStatusRaw),
		Flags:          make([]string, 0, len(p.Restrictions)),
		Zoning:         SignalOK,
		Environmental:  SignalOK,
		Occupancy:      SignalOK,
		HasMortgage:    p.HasMortgage,
		BlockchainHash: p.BlockchainHash,
		Address:        p.Address,
		Region:         p.Region,
	}
	for _, r := range p.Restrictions {
		row.Flags = append(row.Flags, RestrictionLabel(r))
		switch r.Type {
		case "zoning":
			row.Zoning = SignalBad
		case "environmental":
			row.Environmental = SignalWarn
		}
	}
	return row
}

// ClassifyParcels classifies each parcel, preserving order.
func ClassifyParcels(parcels []model.ParcelComplianceRecord) []ComplianceRow {
	rows := make([]ComplianceRow, 0, len(parcels))
	for _, p := range parcels {
		rows = append(rows, ClassifyParcelCompliance(p))
	}
	return rows
}

// SummarizeCompliance counts rows per status.
func SummarizeCompliance(rows []ComplianceRow) ComplianceSummary {
	s := ComplianceSummary{
		Total: len(rows),
		ByStatus: map[string]int{
			StatusVerified:   0,
			StatusPending:    0,
			StatusDisputed:   0,
			StatusLitigation: 0,
		},
	}
	for _, r := range rows {
		s.ByStatus[r.StatusKey]++
		if len(r.Flags) > 0 {
			s.WithFlags++
		}
		if r.HasMortgage {
			s.WithMortgage++
		}
	}
	s.CleanRate = round(percent(s.ByStatus[StatusVerified], s.Total), 1)
	return s
}
