package dashboard

import (
	"context"

	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/business/metrics"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"
	"golang.org/x/sync/errgroup"
)

// Source is the read-only registry backend.
type Source interface {
	BubbleRisk(ctx context.Context) (model.BubbleRiskSnapshot, error)
	Regions(ctx context.Context) ([]model.RegionRecord, error)
	Parcels(ctx context.Context) ([]model.ParcelComplianceRecord, error)
	Mortgages(ctx context.Context) ([]model.MortgageRecord, error)
	TransferCount(ctx context.Context) (int, error)
	MortgageCount(ctx context.Context) (int, error)
}

// SnapshotStore keeps the last good payload per section.
type SnapshotStore interface {
	Save(ctx context.Context, section string, payload any) error
	Load(ctx context.Context, section string, dst any) error
}

// Service assembles page view-models from concurrent registry fetches.
type Service struct {
	source Source
	store  SnapshotStore
	policy metrics.Policy
}

// NewService creates a Service that computes with policy.
func NewService(source Source, store SnapshotStore, policy metrics.Policy) *Service {
	return &Service{source: source, store: store, policy: policy}
}

// Policy returns the thresholds the service computes with.
func (s *Service) Policy() metrics.Policy {
	return s.policy
}

// OverviewView is the landing page.
type OverviewView struct {
	Overview metrics.Overview `json:"overview"`
	Sections Sections         `json:"sections"`
}

// BubbleRiskView is the Bubble Risk page.
type BubbleRiskView struct {
	KPIs       metrics.BubbleKPIs   `json:"kpis"`
	Regions    []metrics.RegionRisk `json:"regions"`
	TierCounts map[metrics.Tier]int `json:"tierCounts"`
	Sections   Sections             `json:"sections"`
}

// RegionsView is the Regions table page.
type RegionsView struct {
	Filter   metrics.RegionFilter `json:"filter"`
	Total    int                  `json:"total"`
	Rows     []metrics.RegionRisk `json:"rows"`
	Sections Sections             `json:"sections"`
}

// ComplianceView is the Legal Cleanliness page. Summary covers every
// fetched parcel; Rows only those matching the filter.
type ComplianceView struct {
	Filter   metrics.ComplianceFilter  `json:"filter"`
	Summary  metrics.ComplianceSummary `json:"summary"`
	Total    int                       `json:"total"`
	Rows     []metrics.ComplianceRow   `json:"rows"`
	Sections Sections                  `json:"sections"`
}

// MortgagesView is the Mortgages page.
type MortgagesView struct {
	Filter   metrics.MortgageFilter `json:"filter"`
	KPIs     metrics.MortgageKPIs   `json:"kpis"`
	Total    int                    `json:"total"`
	Rows     []metrics.MortgageRow  `json:"rows"`
	Sections Sections               `json:"sections"`
}

// Overview fetches bubble risk, regions and both registry counts concurrently.
func (s *Service) Overview(ctx context.Context) OverviewView {
	var (
		g                        errgroup.Group
		snap                     model.BubbleRiskSnapshot
		regions                  []model.RegionRecord
		transfers, mortgages     int
		snapSt, regionsSt        SectionStatus
		transfersSt, mortgagesSt SectionStatus
	)
	g.Go(func() error {
		snap, snapSt = loadSection(ctx, s.store, SectionBubble, s.source.BubbleRisk, model.BubbleRiskSnapshot{})
		return nil
	})
	g.Go(func() error {
		regions, regionsSt = loadSection(ctx, s.store, SectionRegions, s.source.Regions, []model.RegionRecord{})
		return nil
	})
	g.Go(func() error {
		transfers, transfersSt = loadSection(ctx, s.store, SectionTransferCount, s.source.TransferCount, 0)
		return nil
	})
	g.Go(func() error {
		mortgages, mortgagesSt = loadSection(ctx, s.store, SectionMortgageCount, s.source.MortgageCount, 0)
		return nil
	})
	_ = g.Wait()

	var counts metrics.Counts
	if transfersSt.State != StateDefault {
		counts.Transfers = &transfers
	}
	if mortgagesSt.State != StateDefault {
		counts.Mortgages = &mortgages
	}

	bubble := metrics.ComputeBubbleKPIs(snap, s.policy)
	rows := metrics.ComputeRegions(regions, snap, s.policy)
	return OverviewView{
		Overview: metrics.AggregateOverview(rows, bubble, counts),
		Sections: Sections{
			SectionBubble:        snapSt,
			SectionRegions:       regionsSt,
			SectionTransferCount: transfersSt,
			SectionMortgageCount: mortgagesSt,
		},
	}
}

// BubbleRisk fetches the national snapshot and regions concurrently.
func (s *Service) BubbleRisk(ctx context.Context) BubbleRiskView {
	snap, regions, sections := s.bubbleAndRegions(ctx)
	rows := metrics.ComputeRegions(regions, snap, s.policy)

	tiers := map[metrics.Tier]int{metrics.TierHigh: 0, metrics.TierMedium: 0, metrics.TierLow: 0}
	for _, r := range rows {
		tiers[r.RiskTier]++
	}
	return BubbleRiskView{
		KPIs:       metrics.ComputeBubbleKPIs(snap, s.policy),
		Regions:    rows,
		TierCounts: tiers,
		Sections:   sections,
	}
}

// Regions returns the scored, filtered and sorted region table.
func (s *Service) Regions(ctx context.Context, filter metrics.RegionFilter, sortKey string, desc bool) (RegionsView, error) {
	// Reject a bad sort key before spending any fetches.
	if _, err := metrics.SortRegions(nil, sortKey, desc); err != nil {
		return RegionsView{}, err
	}
	snap, regions, sections := s.bubbleAndRegions(ctx)
	rows := metrics.ComputeRegions(regions, snap, s.policy)
	sorted, err := metrics.SortRegions(metrics.FilterRegions(rows, filter), sortKey, desc)
	if err != nil {
		return RegionsView{}, err
	}
	return RegionsView{Filter: filter, Total: len(rows), Rows: sorted, Sections: sections}, nil
}

// Compliance classifies and filters parcels.
func (s *Service) Compliance(ctx context.Context, filter metrics.ComplianceFilter) ComplianceView {
	parcels, st := loadSection(ctx, s.store, SectionParcels, s.source.Parcels, []model.ParcelComplianceRecord{})
	rows := metrics.ClassifyParcels(parcels)
	return ComplianceView{
		Filter:   filter,
		Summary:  metrics.SummarizeCompliance(rows),
		Total:    len(rows),
		Rows:     metrics.FilterCompliance(rows, filter),
		Sections: Sections{SectionParcels: st},
	}
}

// Mortgages fetches the mortgage list and the registry count concurrently.
func (s *Service) Mortgages(ctx context.Context, filter metrics.MortgageFilter) (MortgagesView, error) {
	if err := filter.Validate(); err != nil {
		return MortgagesView{}, err
	}

	var (
		g                  errgroup.Group
		records            []model.MortgageRecord
		registered         int
		recordsSt, countSt SectionStatus
	)
	g.Go(func() error {
		records, recordsSt = loadSection(ctx, s.store, SectionMortgages, s.source.Mortgages, []model.MortgageRecord{})
		return nil
	})
	g.Go(func() error {
		registered, countSt = loadSection(ctx, s.store, SectionMortgageCount, s.source.MortgageCount, 0)
		return nil
	})
	_ = g.Wait()

	rows := metrics.ComputeMortgageRows(records)
	return MortgagesView{
		Filter:   filter,
		KPIs:     metrics.ComputeMortgageKPIs(rows, registered),
		Total:    len(rows),
		Rows:     metrics.FilterMortgages(rows, filter),
		Sections: Sections{SectionMortgages: recordsSt, SectionMortgageCount: countSt},
	}, nil
}

func (s *Service) bubbleAndRegions(ctx context.Context) (model.BubbleRiskSnapshot, []model.RegionRecord, Sections) {
	var (
		g                 errgroup.Group
		snap              model.BubbleRiskSnapshot
		regions           []model.RegionRecord
		snapSt, regionsSt SectionStatus
	)
	g.Go(func() error {
		snap, snapSt = loadSection(ctx, s.store, SectionBubble, s.source.BubbleRisk, model.BubbleRiskSnapshot{})
		return nil
	})
	g.Go(func() error {
		regions, regionsSt = loadSection(ctx, s.store, SectionRegions, s.source.Regions, []model.RegionRecord{})
		return nil
	})
	_ = g.Wait()
	return snap, regions, Sections{SectionBubble: snapSt, SectionRegions: regionsSt}
}
