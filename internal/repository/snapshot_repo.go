package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrSnapshotNotFound is returned when no snapshot was saved for a section.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotCollection holds one document per dashboard section.
const SnapshotCollection = "dashboard_snapshots"

// snapshotDoc is the Firestore shape of a saved section. The payload is kept
// as JSON text so decimal and date types round-trip unchanged.
type snapshotDoc struct {
	Section string    `firestore:"section"`
	Payload string    `firestore:"payload"`
	SavedAt time.Time `firestore:"savedAt"`
}

// SnapshotRepository stores the last good payload of each dashboard section
// in the dashboard_snapshots collection, one document per section.
type SnapshotRepository struct {
	client *firestore.Client
}

// NewSnapshotRepository wraps an open Firestore client.
func NewSnapshotRepository(client *firestore.Client) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

func (r *SnapshotRepository) Save(ctx context.Context, section string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", section, err)
	}
	ref := r.client.Collection(SnapshotCollection).Doc(section)
	doc := snapshotDoc{Section: section, Payload: string(data), SavedAt: time.Now().UTC()}
	if _, err := ref.Set(ctx, doc); err != nil {
		return fmt.Errorf("save snapshot %s: %w", section, err)
	}
	return nil
}

func (r *SnapshotRepository) Load(ctx context.Context, section string, dst any) error {
	ref := r.client.Collection(SnapshotCollection).Doc(section)
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrSnapshotNotFound
		}
		return fmt.Errorf("get snapshot %s: %w", section, err)
	}
	var doc snapshotDoc
	if err := snap.DataTo(&doc); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", section, err)
	}
	if err := json.Unmarshal([]byte(doc.Payload), dst); err != nil {
		return fmt.Errorf("decode snapshot %s payload: %w", section, err)
	}
	return nil
}
