package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/business/metrics"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port                string
	GinMode             string
	RegistryBaseURL     string
	RegistryToken       string
	RegistryTimeout     time.Duration
	RegistryRPS         float64
	RegistryFetchLimit  int
	PolicyFile          string
	FirebaseProjectID   string
	FirebaseCredsBase64 string
	FirebaseCredsFile   string
	AllowedOrigins      string
}

// Load reads environment variables into a Config with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "release"),
		RegistryBaseURL:     strings.TrimSpace(os.Getenv("REGISTRY_BASE_URL")),
		RegistryToken:       strings.TrimSpace(os.Getenv("REGISTRY_TOKEN")),
		PolicyFile:          strings.TrimSpace(os.Getenv("POLICY_FILE")),
		FirebaseProjectID:   strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		FirebaseCredsBase64: strings.TrimSpace(os.Getenv("FIREBASE_CREDS_BASE64")),
		FirebaseCredsFile:   strings.TrimSpace(os.Getenv("FIREBASE_CREDS_FILE")),
		AllowedOrigins:      strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")),
	}

	timeoutSeconds, err := parseIntEnv("REGISTRY_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse REGISTRY_TIMEOUT_SECONDS: %w", err)
	}
	cfg.RegistryTimeout = time.Duration(timeoutSeconds) * time.Second

	rps, err := parseFloatEnv("REGISTRY_RPS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse REGISTRY_RPS: %w", err)
	}
	cfg.RegistryRPS = rps

	limit, err := parseIntEnv("REGISTRY_FETCH_LIMIT", 500)
	if err != nil {
		return Config{}, fmt.Errorf("parse REGISTRY_FETCH_LIMIT: %w", err)
	}
	cfg.RegistryFetchLimit = limit

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.RegistryBaseURL == "" {
		return errors.New("REGISTRY_BASE_URL is required")
	}
	u, err := url.Parse(c.RegistryBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("REGISTRY_BASE_URL %q is not an absolute URL", c.RegistryBaseURL)
	}
	if c.RegistryTimeout <= 0 {
		return errors.New("REGISTRY_TIMEOUT_SECONDS must be positive")
	}
	if c.RegistryRPS < 0 {
		return errors.New("REGISTRY_RPS must not be negative")
	}
	if c.RegistryFetchLimit <= 0 {
		return errors.New("REGISTRY_FETCH_LIMIT must be positive")
	}
	if c.FirebaseProjectID != "" && c.FirebaseCredsBase64 == "" && c.FirebaseCredsFile == "" {
		return errors.New("provide FIREBASE_CREDS_BASE64 or FIREBASE_CREDS_FILE for Firestore auth")
	}
	return nil
}

// SnapshotsEnabled reports whether fallback snapshots should persist to Firestore.
func (c Config) SnapshotsEnabled() bool {
	return c.FirebaseProjectID != ""
}

// FirebaseCredentialsJSON returns the service account JSON bytes and the source used.
func (c Config) FirebaseCredentialsJSON() ([]byte, string, error) {
	if c.FirebaseCredsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseCredsBase64)
		if err != nil {
			return nil, "base64", fmt.Errorf("decode FIREBASE_CREDS_BASE64: %w", err)
		}
		return decoded, "base64", nil
	}
	if c.FirebaseCredsFile != "" {
		data, err := os.ReadFile(c.FirebaseCredsFile)
		if err != nil {
			return nil, "file", fmt.Errorf("read FIREBASE_CREDS_FILE: %w", err)
		}
		return data, "file", nil
	}
	return nil, "", errors.New("no firebase credentials found")
}

// LoadPolicy returns the default policy, overlaid with POLICY_FILE when set.
func (c Config) LoadPolicy() (metrics.Policy, error) {
	if c.PolicyFile == "" {
		return metrics.DefaultPolicy(), nil
	}
	data, err := os.ReadFile(c.PolicyFile)
	if err != nil {
		return metrics.Policy{}, fmt.Errorf("read POLICY_FILE: %w", err)
	}
	p, err := metrics.ParsePolicy(data)
	if err != nil {
		return metrics.Policy{}, fmt.Errorf("parse POLICY_FILE %s: %w", c.PolicyFile, err)
	}
	return p, nil
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func parseIntEnv(key string, defaultVal int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(val)
}

func parseFloatEnv(key string, defaultVal float64) (float64, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	return strconv.ParseFloat(val, 64)
}
