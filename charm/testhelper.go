// ABOUTME: Test utilities for creating isolated charm clients
// ABOUTME: Backs the client with BadgerDB in a temp dir so tests need no charm server

package charm

import (
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v3"
)

// badgerStore implements store directly on BadgerDB.
type badgerStore struct {
	db *badger.DB
}

func (b *badgerStore) Get(key []byte) ([]byte, error) {
	var result []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	return result, err
}

func (b *badgerStore) Set(key, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (b *badgerStore) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (b *badgerStore) Sync() error {
	return nil
}

// NewTestClient creates a client on a BadgerDB in t.TempDir.
// The database is closed when the test ends.
func NewTestClient(t testing.TB) *Client {
	t.Helper()

	dir := filepath.Join(t.TempDir(), AppName)
	opts := badger.DefaultOptions(dir).
		WithLogger(nil) // Suppress badger logs in tests

	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	return &Client{
		kv:     &badgerStore{db: db},
		config: &Config{Host: "localhost", AutoSync: false},
	}
}
