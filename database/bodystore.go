// database/bodystore.go - bbolt document store for body-measurement history
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BucketBodyHistories holds one nested bucket per user.
const BucketBodyHistories = "body_histories"

// OpenBodyStore opens (or creates) the document store file and its root bucket.
func OpenBodyStore(path string) (*bolt.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating body store directory: %w", err)
		}
	}

	store, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening body store: %w", err)
	}

	err = store.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketBodyHistories)); err != nil {
			return fmt.Errorf("creating %s bucket: %w", BucketBodyHistories, err)
		}
		return nil
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return store, nil
}
