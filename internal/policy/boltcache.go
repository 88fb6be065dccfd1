package policy

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var prepBucket = []byte("prep")

// boltStore persists prep-cache entries to a bbolt database so a
// policy instance's in-flight PREP/ACCEPT state survives a process
// restart. It is strictly an opt-in durability layer: the prep cache
// itself remains scoped to one Policy instance and obeys the same
// 2-decrement validity window regardless of backing store.
type boltStore struct {
	db *bolt.DB
}

func openBoltStore(path string) (*boltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("policy: open bolt cache: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(prepBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("policy: init bolt cache bucket: %w", err)
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) put(domain string, e prepEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(prepBucket).Put([]byte(domain), data)
	})
}

func (s *boltStore) delete(domain string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(prepBucket).Delete([]byte(domain))
	})
}

// loadAll reads every persisted entry back, for warming an in-memory
// prep cache after a restart.
func (s *boltStore) loadAll() (map[string]prepEntry, error) {
	out := make(map[string]prepEntry)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(prepBucket).ForEach(func(k, v []byte) error {
			var e prepEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			out[string(k)] = e
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *boltStore) close() error {
	return s.db.Close()
}
