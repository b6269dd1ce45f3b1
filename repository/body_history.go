package repository

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"

	"crewfit/database"
	"crewfit/models"

	bolt "go.etcd.io/bbolt"
)

// BodyHistoryRepository stores body snapshots as JSON documents in bbolt.
// Layout: body_histories/<user id>/<created unix nanos><document id> -> JSON.
type BodyHistoryRepository struct {
	db *bolt.DB
}

func NewBodyHistoryRepository(db *bolt.DB) *BodyHistoryRepository {
	return &BodyHistoryRepository{db: db}
}

func userBucketKey(userID uint) []byte {
	return []byte(strconv.FormatUint(uint64(userID), 10))
}

func documentKey(history models.BodyHistory) []byte {
	key := make([]byte, 8, 8+len(history.ID))
	binary.BigEndian.PutUint64(key, uint64(history.CreatedAt.UnixNano()))
	return append(key, history.ID...)
}

func (r *BodyHistoryRepository) Save(history models.BodyHistory) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket([]byte(database.BucketBodyHistories))
		b, err := root.CreateBucketIfNotExists(userBucketKey(history.UserID))
		if err != nil {
			return fmt.Errorf("creating user bucket: %w", err)
		}

		data, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("marshaling body history: %w", err)
		}

		return b.Put(documentKey(history), data)
	})
}

// FindLatestByUser returns the newest snapshot, or ErrNotFound when the user has none.
func (r *BodyHistoryRepository) FindLatestByUser(userID uint) (*models.BodyHistory, error) {
	var history models.BodyHistory

	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(database.BucketBodyHistories)).Bucket(userBucketKey(userID))
		if b == nil {
			return ErrNotFound
		}

		k, v := b.Cursor().Last()
		if k == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &history)
	})
	if err != nil {
		return nil, err
	}

	return &history, nil
}

// ListByUser returns the user's snapshots, newest first.
func (r *BodyHistoryRepository) ListByUser(userID uint) ([]models.BodyHistory, error) {
	histories := []models.BodyHistory{}

	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(database.BucketBodyHistories)).Bucket(userBucketKey(userID))
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var history models.BodyHistory
			if err := json.Unmarshal(v, &history); err != nil {
				return fmt.Errorf("unmarshaling body history: %w", err)
			}
			histories = append(histories, history)
		}
		return nil
	})

	return histories, err
}
