// Package store persists serialized model records in a BadgerDB key-value
// store, one store per project directory. The store only ever sees the
// portable record format produced by pkg/codec; live elements never touch
// disk directly.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/yoshimomax/sysmlmodeler/pkg/codec"
	"github.com/yoshimomax/sysmlmodeler/pkg/kerml"
)

// ErrModelNotFound is returned when no model exists under the given id.
var ErrModelNotFound = errors.New("model not found")

const modelKeyPrefix = "model:"

// Config holds the configuration for the Badger-backed store.
type Config struct {
	// DataDir is the directory where BadgerDB stores its data.
	DataDir string

	// InMemory enables in-memory mode (useful for testing).
	InMemory bool

	// SyncWrites enables synchronous writes. Disabled by default for
	// throughput; a crash may lose the most recent writes.
	SyncWrites bool

	// ReadOnly opens the store in read-only mode.
	ReadOnly bool

	// BlockCacheSize is the Badger block cache in bytes.
	BlockCacheSize int64

	// IndexCacheSize is the Badger index cache in bytes.
	IndexCacheSize int64
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.DataDir == "" && !c.InMemory {
		return fmt.Errorf("DataDir must be specified when InMemory is false")
	}
	if c.BlockCacheSize < 0 {
		return fmt.Errorf("BlockCacheSize must be non-negative, got %d", c.BlockCacheSize)
	}
	if c.IndexCacheSize < 0 {
		return fmt.Errorf("IndexCacheSize must be non-negative, got %d", c.IndexCacheSize)
	}
	return nil
}

// DefaultConfig returns a configuration sized for a desktop modeling
// session; model records are small so the caches stay modest.
func DefaultConfig(dataDir string) *Config {
	return &Config{
		DataDir:        dataDir,
		BlockCacheSize: 64 << 20, // 64 MB
		IndexCacheSize: 32 << 20, // 32 MB
	}
}

// Store is a Badger-backed model store for one project.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store described by cfg.
func Open(cfg *Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("")
		opts.InMemory = true
	} else {
		opts = badger.DefaultOptions(filepath.Join(cfg.DataDir, "badger"))
		opts.BlockCacheSize = cfg.BlockCacheSize
		opts.IndexCacheSize = cfg.IndexCacheSize
		opts.SyncWrites = cfg.SyncWrites
		opts.ReadOnly = cfg.ReadOnly
	}
	opts.Logger = nil // Badger's default logger is too chatty for a library

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", cfg.DataDir, err)
	}
	return &Store{db: db}, nil
}

// SaveModel serializes and stores the model under its id.
func (s *Store) SaveModel(m *kerml.Model) error {
	data, err := codec.EncodeModel(m)
	if err != nil {
		return fmt.Errorf("encode model %s: %w", m.ID, err)
	}
	return s.SaveRecord(m.ID, data)
}

// SaveRecord stores an already-encoded root record under the given id. The
// record is decoded first so a malformed payload is rejected before it can
// reach disk.
func (s *Store) SaveRecord(id string, data []byte) error {
	if _, err := codec.DecodeModel(data); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(modelKeyPrefix+id), data)
	})
}

// LoadModel loads and reconstructs the model stored under id.
func (s *Store) LoadModel(id string) (*kerml.Model, error) {
	data, err := s.LoadRecord(id)
	if err != nil {
		return nil, err
	}
	return codec.DecodeModel(data)
}

// LoadRecord returns the raw encoded record stored under id.
func (s *Store) LoadRecord(id string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(modelKeyPrefix + id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrModelNotFound, id)
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// DeleteModel removes the model stored under id and reports whether it
// existed.
func (s *Store) DeleteModel(id string) (bool, error) {
	found := false
	err := s.db.Update(func(txn *badger.Txn) error {
		key := []byte(modelKeyPrefix + id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		return txn.Delete(key)
	})
	return found, err
}

// ModelInfo summarizes one stored model for listings.
type ModelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ListModels returns summaries of every stored model, in key order.
func (s *Store) ListModels() ([]ModelInfo, error) {
	var infos []ModelInfo
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(modelKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(modelKeyPrefix):])
			info := ModelInfo{ID: id}

			// Pull the display name out of the stored record; a decode
			// failure here degrades to an id-only listing.
			_ = item.Value(func(val []byte) error {
				var rec struct {
					Name string `json:"name"`
				}
				if err := json.Unmarshal(val, &rec); err == nil {
					info.Name = rec.Name
				}
				return nil
			})
			infos = append(infos, info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
