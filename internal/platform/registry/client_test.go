package registry

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
)

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func respond(status int, body string) roundTripperFunc {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
		}, nil
	}
}

func TestClientRegionsBareArray(t *testing.T) {
	body := `[{"regionName":"Beograd  ","parcelCount":1200,"disputeCount":12,"transferCount":80,"verificationRatePercent":91.5,
		"transfersTrend":[{"month":"Jan","value":10}]},
		{"regionName":"Niš","parcelCount":400,"disputeCount":3,"transferCount":20}]`
	c := New(respond(http.StatusOK, body), Config{BaseURL: "http://registry.test"})

	got, err := c.Regions(context.Background())
	if err != nil {
		t.Fatalf("Regions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].RegionName != "Beograd" {
		t.Errorf("RegionName = %q, want cleaned", got[0].RegionName)
	}
	if got[0].VerificationRatePercent == nil || *got[0].VerificationRatePercent != 91.5 {
		t.Errorf("VerificationRatePercent = %v", got[0].VerificationRatePercent)
	}
	if got[1].VerificationRatePercent != nil {
		t.Errorf("missing optional field should stay nil")
	}
}

func TestClientMortgagesEnvelope(t *testing.T) {
	body := `{"data":[{"mortgageId":"M-1","parcelId":"BG-1","region":"Beograd","bank":"UniCredit","status":"Active",
		"originalAmount":"150000.00","remaining":120000,"monthly":null,"startDate":"2021-04-01"}]}`
	var gotURL string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return respond(http.StatusOK, body)(req)
	})
	c := New(rt, Config{BaseURL: "http://registry.test/", Limit: 50, Token: "secret"})

	got, err := c.Mortgages(context.Background())
	if err != nil {
		t.Fatalf("Mortgages: %v", err)
	}
	if gotURL != "http://registry.test/api/mortgages?limit=50" {
		t.Errorf("url = %s", gotURL)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d", len(got))
	}
	m := got[0]
	if !m.OriginalAmount.Equal(decimal.NewFromInt(150000)) || !m.Remaining.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("amounts = %s/%s", m.OriginalAmount, m.Remaining)
	}
	if m.Monthly.Valid {
		t.Errorf("null monthly should be invalid")
	}
	if m.StartDate.String() != "2021-04-01" {
		t.Errorf("StartDate = %s", m.StartDate)
	}
}

func TestClientSendsHeaders(t *testing.T) {
	var auth, accept string
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		auth = req.Header.Get("Authorization")
		accept = req.Header.Get("Accept")
		return respond(http.StatusOK, `{"count": 7}`)(req)
	})
	c := New(rt, Config{BaseURL: "http://registry.test", Token: "secret"})
	n, err := c.TransferCount(context.Background())
	if err != nil {
		t.Fatalf("TransferCount: %v", err)
	}
	if n != 7 {
		t.Errorf("count = %d, want 7", n)
	}
	if auth != "Bearer secret" || accept != "application/json" {
		t.Errorf("headers = %q / %q", auth, accept)
	}
}

func TestClientBubbleRiskEnvelopeAndBare(t *testing.T) {
	for _, body := range []string{
		`{"riskScore":80,"currentPriceGrowthPercent":18.4,"trend":"stable"}`,
		`{"data":{"riskScore":80,"currentPriceGrowthPercent":18.4,"trend":"stable"}}`,
	} {
		c := New(respond(http.StatusOK, body), Config{BaseURL: "http://registry.test"})
		snap, err := c.BubbleRisk(context.Background())
		if err != nil {
			t.Fatalf("BubbleRisk(%s): %v", body, err)
		}
		if snap.RiskScore == nil || *snap.RiskScore != 80 || snap.Trend != "stable" {
			t.Errorf("snapshot = %+v", snap)
		}
		if snap.CurrentIncomeGrowthPercent != nil {
			t.Errorf("absent income growth should be nil")
		}
	}
}

func TestClientNon200(t *testing.T) {
	calls := 0
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls++
		return respond(http.StatusBadGateway, "upstream down")(req)
	})
	c := New(rt, Config{BaseURL: "http://registry.test"})
	_, err := c.Regions(context.Background())
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("err = %v, want ErrUnexpectedStatus", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want a single attempt", calls)
	}
}

func TestClientTransportError(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})
	c := New(rt, Config{BaseURL: "http://registry.test"})
	if _, err := c.MortgageCount(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestClientMissingCount(t *testing.T) {
	c := New(respond(http.StatusOK, `{"total": 3}`), Config{BaseURL: "http://registry.test"})
	if _, err := c.MortgageCount(context.Background()); err == nil {
		t.Fatal("expected error for missing count")
	}
}

func TestClientMalformedJSON(t *testing.T) {
	c := New(respond(http.StatusOK, `{"data": [`), Config{BaseURL: "http://registry.test"})
	if _, err := c.Parcels(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClientCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(respond(http.StatusOK, `[]`), Config{BaseURL: "http://registry.test", RequestsPerSecond: 1})
	if _, err := c.Regions(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
