package dashboard

import (
	"context"
	"log"
)

// Section names, also used as snapshot keys.
const (
	SectionBubble        = "bubble"
	SectionRegions       = "regions"
	SectionParcels       = "parcels"
	SectionMortgages     = "mortgages"
	SectionTransferCount = "transferCount"
	SectionMortgageCount = "mortgageCount"
)

// SectionState tells the presentation layer where a section's data came from.
type SectionState string

const (
	StateLive    SectionState = "live"
	StateCached  SectionState = "cached"
	StateDefault SectionState = "default"
)

// SectionStatus reports the outcome of one fetch.
type SectionStatus struct {
	State SectionState `json:"state"`
	Error string       `json:"error,omitempty"`
}

// Sections maps section name to its status.
type Sections map[string]SectionStatus

// Degraded reports whether any section is not live.
func (s Sections) Degraded() bool {
	for _, st := range s {
		if st.State != StateLive {
			return true
		}
	}
	return false
}

// loadSection runs one fetch. A successful result is saved as the section's
// snapshot; a failure falls back to the last snapshot, then to fallback.
// It never returns an error.
func loadSection[T any](ctx context.Context, store SnapshotStore, section string, fetch func(context.Context) (T, error), fallback T) (T, SectionStatus) {
	v, err := fetch(ctx)
	if err == nil {
		if saveErr := store.Save(ctx, section, v); saveErr != nil {
			log.Printf("[dashboard] section %s snapshot save failed: %v", section, saveErr)
		}
		return v, SectionStatus{State: StateLive}
	}

	var cached T
	if loadErr := store.Load(ctx, section, &cached); loadErr == nil {
		log.Printf("[dashboard] section %s fallback=cached: %v", section, err)
		return cached, SectionStatus{State: StateCached, Error: err.Error()}
	}
	log.Printf("[dashboard] section %s fallback=default: %v", section, err)
	return fallback, SectionStatus{State: StateDefault, Error: err.Error()}
}
