package metrics

import (
	"reflect"
	"testing"
)

func regionNames(rows []RegionRisk) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.RegionName)
	}
	return out
}

func TestSortRegions(t *testing.T) {
	rows := []RegionRisk{
		{RegionName: "Niš", RiskScore: 50, ParcelCount: 300},
		{RegionName: "Beograd", RiskScore: 70, ParcelCount: 900},
		{RegionName: "Čačak", RiskScore: 50, ParcelCount: 100},
		{RegionName: "Novi Sad", RiskScore: 30, ParcelCount: 600},
	}

	byRisk, err := SortRegions(rows, SortByRisk, true)
	if err != nil {
		t.Fatalf("SortRegions: %v", err)
	}
	// ties keep input order
	if want := []string{"Beograd", "Niš", "Čačak", "Novi Sad"}; !reflect.DeepEqual(regionNames(byRisk), want) {
		t.Errorf("by risk desc = %v, want %v", regionNames(byRisk), want)
	}

	byParcels, err := SortRegions(rows, SortByParcels, false)
	if err != nil {
		t.Fatalf("SortRegions: %v", err)
	}
	if want := []string{"Čačak", "Niš", "Novi Sad", "Beograd"}; !reflect.DeepEqual(regionNames(byParcels), want) {
		t.Errorf("by parcels asc = %v, want %v", regionNames(byParcels), want)
	}

	if regionNames(rows)[0] != "Niš" {
		t.Error("input slice was reordered")
	}

	unsorted, err := SortRegions(rows, "", false)
	if err != nil || !reflect.DeepEqual(unsorted, rows) {
		t.Errorf("empty key should keep order, err=%v", err)
	}

	if _, err := SortRegions(rows, "altitude", false); err == nil {
		t.Error("expected error for unknown key")
	}
}
