package metrics

import (
	"reflect"
	"testing"
	"time"

	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"
)

func complianceRows() []ComplianceRow {
	return []ComplianceRow{
		{ParcelID: "BG-001", StatusKey: StatusVerified, Region: "Beograd", BlockchainHash: "0xa1", Flags: []string{}},
		{ParcelID: "NS-002", StatusKey: StatusPending, Region: "Novi Sad", BlockchainHash: "0xa2", Flags: []string{"Easement"}},
		{ParcelID: "bg-003", StatusKey: StatusDisputed, Region: "Beograd", BlockchainHash: "0xa3", Flags: []string{"Lien registered"}},
		{ParcelID: "KG-004", StatusKey: StatusVerified, Region: "Kragujevac", BlockchainHash: "0xa4", Flags: []string{}},
		{ParcelID: "NI-005", StatusKey: StatusLitigation, Region: "Niš", BlockchainHash: "0xa5", Flags: []string{"Legal encumbrance"}},
		{ParcelID: "SU-006", StatusKey: StatusVerified, Region: "Subotica", BlockchainHash: "0xa6", Flags: []string{}},
		{ParcelID: "Bg-007", StatusKey: StatusPending, Region: "Beograd", BlockchainHash: "0xa7", Flags: []string{"Zoning restriction"}},
		{ParcelID: "ZR-008", StatusKey: StatusVerified, Region: "Zrenjanin", BlockchainHash: "0xa8", Flags: []string{}},
		{ParcelID: "PA-009", StatusKey: StatusDisputed, Region: "Pančevo", BlockchainHash: "0xa9", Flags: []string{}},
		{ParcelID: "CA-010", StatusKey: StatusVerified, Region: "Čačak", BlockchainHash: "0xaa", Flags: []string{"Easement"}},
	}
}

func ids(rows []ComplianceRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ParcelID)
	}
	return out
}

func TestFilterComplianceQueryIsStableAndCaseInsensitive(t *testing.T) {
	f := DefaultComplianceFilter()
	f.Query = "BG"
	got := FilterCompliance(complianceRows(), f)
	want := []string{"BG-001", "bg-003", "Bg-007"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("ids = %v, want %v", ids(got), want)
	}
}

func TestFilterComplianceDefaultsReturnInput(t *testing.T) {
	rows := complianceRows()
	got := FilterCompliance(rows, DefaultComplianceFilter())
	if !reflect.DeepEqual(got, rows) {
		t.Fatalf("default filter changed rows")
	}
}

func TestFilterComplianceCombinesWithAnd(t *testing.T) {
	tests := []struct {
		name   string
		filter ComplianceFilter
		want   []string
	}{
		{
			name:   "status only",
			filter: ComplianceFilter{Status: StatusPending, Region: All, Flags: All},
			want:   []string{"NS-002", "Bg-007"},
		},
		{
			name:   "region and status",
			filter: ComplianceFilter{Status: StatusVerified, Region: "Beograd", Flags: All},
			want:   []string{"BG-001"},
		},
		{
			name:   "flags any",
			filter: ComplianceFilter{Status: All, Region: "Beograd", Flags: FlagsAny},
			want:   []string{"bg-003", "Bg-007"},
		},
		{
			name:   "flags none",
			filter: ComplianceFilter{Status: StatusVerified, Region: All, Flags: FlagsNone},
			want:   []string{"BG-001", "KG-004", "SU-006", "ZR-008"},
		},
		{
			name:   "query on joined flags",
			filter: ComplianceFilter{Query: "easement", Status: All, Region: All, Flags: All},
			want:   []string{"NS-002", "CA-010"},
		},
		{
			name:   "query on hash",
			filter: ComplianceFilter{Query: "0XA5", Status: All, Region: All, Flags: All},
			want:   []string{"NI-005"},
		},
		{
			name:   "no match is empty not nil",
			filter: ComplianceFilter{Query: "BG", Status: StatusLitigation},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterCompliance(complianceRows(), tt.filter)
			if got == nil {
				t.Fatal("result must not be nil")
			}
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("ids = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestFilterComplianceDoesNotMutateInput(t *testing.T) {
	rows := complianceRows()
	before := ids(rows)
	_ = FilterCompliance(rows, ComplianceFilter{Query: "NS"})
	if !reflect.DeepEqual(ids(rows), before) {
		t.Fatal("input reordered")
	}
}

func mortgageRows() []MortgageRow {
	return []MortgageRow{
		{MortgageID: "M-1", ParcelID: "BG-001", Region: "Beograd", Bank: "Banca Intesa", Status: model.MortgageActive, StartDate: model.NewDate(2021, time.March, 1)},
		{MortgageID: "M-2", ParcelID: "NS-002", Region: "Novi Sad", Bank: "UniCredit", Status: model.MortgagePaid, StartDate: model.NewDate(2019, time.June, 15)},
		{MortgageID: "M-3", ParcelID: "BG-003", Region: "Beograd", Bank: "UniCredit", Status: model.MortgageDefaulted, StartDate: model.NewDate(2022, time.January, 10)},
		{MortgageID: "M-4", ParcelID: "NI-004", Region: "Niš", Bank: "Banca Intesa", Status: model.MortgageActive},
	}
}

func mortgageIDs(rows []MortgageRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.MortgageID)
	}
	return out
}

func TestFilterMortgages(t *testing.T) {
	tests := []struct {
		name   string
		filter MortgageFilter
		want   []string
	}{
		{name: "defaults", filter: DefaultMortgageFilter(), want: []string{"M-1", "M-2", "M-3", "M-4"}},
		{name: "bank", filter: MortgageFilter{Status: All, Region: All, Bank: "UniCredit"}, want: []string{"M-2", "M-3"}},
		{name: "query on bank", filter: MortgageFilter{Query: "intesa"}, want: []string{"M-1", "M-4"}},
		{name: "query on parcel", filter: MortgageFilter{Query: "bg-00"}, want: []string{"M-1", "M-3"}},
		{
			name:   "date range inclusive, undated rows excluded",
			filter: MortgageFilter{From: model.NewDate(2021, time.March, 1), To: model.NewDate(2022, time.January, 10)},
			want:   []string{"M-1", "M-3"},
		},
		{name: "open upper bound", filter: MortgageFilter{From: model.NewDate(2022, time.January, 1)}, want: []string{"M-3"}},
		{name: "open lower bound", filter: MortgageFilter{To: model.NewDate(2020, time.January, 1)}, want: []string{"M-2"}},
		{name: "status and region", filter: MortgageFilter{Status: model.MortgageActive, Region: "Niš"}, want: []string{"M-4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mortgageIDs(FilterMortgages(mortgageRows(), tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMortgageFilterValidate(t *testing.T) {
	ok := MortgageFilter{From: model.NewDate(2020, time.January, 1), To: model.NewDate(2020, time.January, 1)}
	if err := ok.Validate(); err != nil {
		t.Fatalf("same-day range: %v", err)
	}
	bad := MortgageFilter{From: model.NewDate(2021, time.January, 1), To: model.NewDate(2020, time.January, 1)}
	if err := bad.Validate(); err != ErrInvalidDateRange {
		t.Fatalf("err = %v, want ErrInvalidDateRange", err)
	}
}

func TestFilterRegions(t *testing.T) {
	rows := []RegionRisk{
		{RegionName: "Beograd", RiskTier: TierHigh},
		{RegionName: "Novi Sad", RiskTier: TierMedium},
		{RegionName: "Novi Pazar", RiskTier: TierHigh},
	}
	got := FilterRegions(rows, RegionFilter{Query: "novi", Tier: string(TierHigh)})
	if len(got) != 1 || got[0].RegionName != "Novi Pazar" {
		t.Fatalf("got %+v", got)
	}
	if all := FilterRegions(rows, DefaultRegionFilter()); !reflect.DeepEqual(all, rows) {
		t.Fatalf("default region filter changed rows")
	}
}
