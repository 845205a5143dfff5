package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/business/dashboard"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/business/metrics"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/platform/config"
	firestoreclient "github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/platform/firestore"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/platform/registry"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/repository"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/model"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/pkg/util"
)

func main() {
	table := flag.String("table", "regions", "Table to export (regions, compliance, mortgages)")
	out := flag.String("out", "", "Output file (default stdout)")
	query := flag.String("q", "", "Free-text search")
	status := flag.String("status", metrics.All, "Status filter (compliance, mortgages)")
	region := flag.String("region", metrics.All, "Region filter (compliance, mortgages)")
	tier := flag.String("tier", metrics.All, "Risk tier filter (regions)")
	flags := flag.String("flags", metrics.All, "Restriction flags filter: any, none or all (compliance)")
	bank := flag.String("bank", metrics.All, "Bank filter (mortgages)")
	from := flag.String("from", "", "Earliest mortgage start date, YYYY-MM-DD")
	to := flag.String("to", "", "Latest mortgage start date, YYYY-MM-DD")
	sortKey := flag.String("sort", "", "Region sort key (name, parcels, disputes, transfers, verification, risk)")
	desc := flag.Bool("desc", false, "Sort regions descending")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	policy, err := cfg.LoadPolicy()
	if err != nil {
		log.Fatalf("Failed to load policy: %v", err)
	}

	var store dashboard.SnapshotStore = repository.NewMemorySnapshots()
	if cfg.SnapshotsEnabled() {
		client, credsSource, err := firestoreclient.New(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Firestore client: %v", err)
		}
		defer client.Close()
		if err := firestoreclient.Ping(ctx, client, repository.SnapshotCollection); err != nil {
			log.Fatalf("Failed to reach %s: %v", repository.SnapshotCollection, err)
		}
		log.Printf("Connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)
		store = repository.NewSnapshotRepository(client)
	}

	source := registry.New(nil, registry.Config{
		BaseURL:           cfg.RegistryBaseURL,
		Token:             cfg.RegistryToken,
		Timeout:           cfg.RegistryTimeout,
		RequestsPerSecond: cfg.RegistryRPS,
		Limit:             cfg.RegistryFetchLimit,
	})
	svc := dashboard.NewService(source, store, policy)

	var (
		t        metrics.Table
		sections dashboard.Sections
	)
	switch strings.ToLower(*table) {
	case "regions":
		f := metrics.DefaultRegionFilter()
		f.Query, f.Tier = *query, *tier
		view, err := svc.Regions(ctx, f, *sortKey, *desc)
		if err != nil {
			log.Fatalf("Failed to build regions: %v", err)
		}
		t, sections = metrics.RegionsTable(view.Rows), view.Sections
	case "compliance":
		f := metrics.DefaultComplianceFilter()
		f.Query, f.Status, f.Region, f.Flags = *query, *status, *region, *flags
		view := svc.Compliance(ctx, f)
		t, sections = metrics.ComplianceTable(view.Rows), view.Sections
	case "mortgages":
		f := metrics.DefaultMortgageFilter()
		f.Query, f.Status, f.Region, f.Bank = *query, *status, *region, *bank
		if f.From, err = model.ParseDate(*from); err != nil {
			log.Fatalf("Invalid -from: %v", err)
		}
		if f.To, err = model.ParseDate(*to); err != nil {
			log.Fatalf("Invalid -to: %v", err)
		}
		view, err := svc.Mortgages(ctx, f)
		if err != nil {
			log.Fatalf("Failed to build mortgages: %v", err)
		}
		t, sections = metrics.MortgagesTable(view.Rows), view.Sections
	default:
		log.Fatalf("Unknown table %q (want regions, compliance or mortgages)", *table)
	}

	for name, st := range sections {
		if st.State != dashboard.StateLive {
			log.Printf("Section %s served from %s data: %s", name, st.State, st.Error)
		}
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer file.Close()
		w = file
	}
	if err := util.WriteCSV(w, t.Header, t.Rows); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}
	if *out != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(t.Rows), *out)
	}
}
