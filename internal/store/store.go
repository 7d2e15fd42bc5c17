// Package store persists the last fetched catalog snapshot so the
// table renders immediately on the next start while a refresh runs in
// the background.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mfergus/tiller/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketRecords = []byte("records")

// SnapshotStore implements domain.SnapshotStore using BoltDB, with an
// in-memory cache promoted on access for hot-path reads.
type SnapshotStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

// NewSnapshotStore opens (or creates) the snapshot database under
// baseDir, partitioned per server so switching endpoints never serves a
// stale foreign snapshot. Empty baseDir means memory-only mode.
func NewSnapshotStore(baseDir, serverURL string) (*SnapshotStore, error) {
	if baseDir == "" {
		return &SnapshotStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if serverURL != "" {
		dir = filepath.Join(baseDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "tiller.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SnapshotStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func filterKey(filter string) string {
	return "filter:" + filter
}

func (s *SnapshotStore) get(key string, dest interface{}) bool {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *SnapshotStore) set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecords).Put([]byte(key), data)
	})
}

func (s *SnapshotStore) delete(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// GetSummaries returns the cached snapshot for a filter term, reporting
// whether one exists.
func (s *SnapshotStore) GetSummaries(filter string) ([]domain.RecordSummary, bool) {
	var records []domain.RecordSummary
	ok := s.get(filterKey(filter), &records)
	return records, ok
}

// SaveSummaries replaces the snapshot for a filter term.
func (s *SnapshotStore) SaveSummaries(filter string, records []domain.RecordSummary) error {
	return s.set(filterKey(filter), records)
}

// Invalidate drops the snapshot for one filter term.
func (s *SnapshotStore) Invalidate(filter string) {
	s.delete(filterKey(filter))
}

// InvalidateAll drops every snapshot, used after a write that changes
// the collection under an unknown set of filters.
func (s *SnapshotStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketRecords); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketRecords)
		return err
	})
}
