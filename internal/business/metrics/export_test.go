package metrics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/util"
)

func TestRegionsTableCSV(t *testing.T) {
	tbl := RegionsTable([]RegionRisk{
		{RegionName: "Belgrade, City", ParcelCount: 1200, DisputeCount: 12, TransferCount: 88, VerificationRate: 91.5, RiskScore: 66, RiskTier: TierHigh},
	})
	var buf bytes.Buffer
	if err := util.WriteCSV(&buf, tbl.Header, tbl.Rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "Region,Parcels,Disputes,Transfers,Verification %,Risk Score,Risk Tier\n" +
		"\"Belgrade, City\",1200,12,88,91.5,66,high\n"
	if buf.String() != want {
		t.Fatalf("csv =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestComplianceTable(t *testing.T) {
	tbl := ComplianceTable([]ComplianceRow{
		{ParcelID: "BG-1", StatusKey: StatusVerified, Flags: []string{"Easement", `Note "A"`}, Zoning: SignalOK, Environmental: SignalWarn, Occupancy: SignalOK, HasMortgage: true, BlockchainHash: "0xff"},
	})
	if len(tbl.Header) != 8 || tbl.Header[7] != "Blockchain Hash" {
		t.Fatalf("header = %v", tbl.Header)
	}
	row := tbl.Rows[0]
	if row[2] != `Easement; Note "A"` || row[6] != "Yes" {
		t.Fatalf("row = %v", row)
	}
	line := util.EscapeCSVField(row[2])
	if line != `"Easement; Note ""A"""` {
		t.Fatalf("escaped flags = %s", line)
	}
}

func TestMortgagesTable(t *testing.T) {
	rows := ComputeMortgageRows([]model.MortgageRecord{
		mortgage("7", "Active", "120000", "99999.5", nil),
	})
	tbl := MortgagesTable(rows)
	got := strings.Join(tbl.Rows[0], "|")
	want := "7|P-7|Beograd|Komercijalna|Active|120000.00|99999.50||2020-05-04"
	if got != want {
		t.Fatalf("row = %s, want %s", got, want)
	}
}
