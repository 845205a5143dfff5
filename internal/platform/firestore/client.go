package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/priyanka348/serbia-land-registry-full--stack-sub001/internal/platform/config"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// New opens the Firestore client that backs the snapshot store. The second
// return value names the credential source (base64 or file).
func New(ctx context.Context, cfg config.Config) (*firestore.Client, string, error) {
	if !cfg.SnapshotsEnabled() {
		return nil, "", errors.New("firestore snapshots disabled: FIREBASE_PROJECT_ID is empty")
	}
	opts, source, err := clientOptions(cfg)
	if err != nil {
		return nil, "", err
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("init firestore client for project %s: %w", cfg.FirebaseProjectID, err)
	}
	return client, source, nil
}

func clientOptions(cfg config.Config) ([]option.ClientOption, string, error) {
	creds, source, err := cfg.FirebaseCredentialsJSON()
	if err != nil {
		return nil, "", err
	}
	return []option.ClientOption{option.WithCredentialsJSON(creds)}, source, nil
}

// Ping reads at most one document from collection so a missing permission on
// the snapshot collection fails at startup instead of on the first fallback.
func Ping(ctx context.Context, client *firestore.Client, collection string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := client.Collection(collection).Limit(1).Documents(ctx).Next()
	if err == nil || errors.Is(err, iterator.Done) {
		return nil
	}
	return fmt.Errorf("ping %s: %w", collection, err)
}
