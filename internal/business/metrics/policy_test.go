package metrics

import "testing"

func TestParsePolicyOverlaysDefaults(t *testing.T) {
	doc := []byte(`
highTierAbove: 70
disputeWeight: 4000
defaults:
  riskScore: 60
  trend: stable
`)
	p, err := ParsePolicy(doc)
	if err != nil {
		t.Fatalf("ParsePolicy: %v", err)
	}
	if p.HighTierAbove != 70 || p.DisputeWeight != 4000 {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.MediumTierAbove != 45 || p.FallbackDivergence != 4.2 {
		t.Errorf("unspecified keys lost their defaults: %+v", p)
	}
	if p.Defaults.RiskScore != 60 || p.Defaults.Trend != TrendStable {
		t.Errorf("nested overrides not applied: %+v", p.Defaults)
	}
}

func TestParsePolicyEmpty(t *testing.T) {
	p, err := ParsePolicy(nil)
	if err != nil {
		t.Fatalf("ParsePolicy(nil): %v", err)
	}
	if p != DefaultPolicy() {
		t.Errorf("empty document should yield defaults")
	}
}

func TestParsePolicyRejectsInvertedThresholds(t *testing.T) {
	if _, err := ParsePolicy([]byte("mediumTierAbove: 80\n")); err == nil {
		t.Error("expected error when medium tier exceeds high tier")
	}
	if _, err := ParsePolicy([]byte("riskWarnAbove: 90\n")); err == nil {
		t.Error("expected error when warn exceeds danger")
	}
	if _, err := ParsePolicy([]byte("defaults:\n  trend: sideways\n")); err == nil {
		t.Error("expected error for unknown trend")
	}
	if _, err := ParsePolicy([]byte("highTierAbove: [1, 2]\n")); err == nil {
		t.Error("expected error for malformed value")
	}
}

func TestDefaultPolicyValid(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("DefaultPolicy invalid: %v", err)
	}
}
