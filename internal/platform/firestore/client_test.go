package firestore

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/platform/config"
)

func TestNewRequiresProject(t *testing.T) {
	if _, _, err := New(context.Background(), config.Config{}); err == nil {
		t.Fatal("expected error when FIREBASE_PROJECT_ID is empty")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := config.Config{
		FirebaseProjectID:   "registry-dashboard",
		FirebaseCredsBase64: base64.StdEncoding.EncodeToString([]byte(`{"type":"service_account"}`)),
	}
	opts, source, err := clientOptions(cfg)
	if err != nil {
		t.Fatalf("clientOptions: %v", err)
	}
	if source != "base64" || len(opts) != 1 {
		t.Errorf("source = %q, opts = %d", source, len(opts))
	}

	if _, _, err := clientOptions(config.Config{FirebaseProjectID: "registry-dashboard"}); err == nil {
		t.Error("expected error without credentials")
	}
}
