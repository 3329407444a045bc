// Package cache persists computed feature vectors between runs.
package cache

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"

	"chess-features/features"
	"chess-features/position"
)

const keyPrefix = "fv/"

// Cache maps a position and side to its feature vector. Safe for concurrent use.
type Cache struct {
	db *badger.DB
}

type entry struct {
	FEN    string          `json:"fen"`
	Side   position.Color  `json:"side"`
	Vector features.Vector `json:"vector"`
}

// Open opens or creates a cache in dir.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory returns a cache that lives only as long as the process.
func OpenInMemory() (*Cache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Cache, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open feature cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Key hashes a position and side into the storage key.
func Key(fen string, side position.Color) []byte {
	h := xxhash.New()
	_, _ = h.WriteString(fen)
	_, _ = h.WriteString("|")
	_, _ = h.WriteString(side.String())

	key := make([]byte, len(keyPrefix)+8)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], h.Sum64())
	return key
}

// Get returns the stored vector. A hash collision with a different position reads
// as a miss.
func (c *Cache) Get(fen string, side position.Color) (features.Vector, bool, error) {
	var (
		e     entry
		found bool
	)
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(Key(fen, side))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if err != nil {
		return features.Vector{}, false, err
	}
	if !found || e.FEN != fen || e.Side != side {
		return features.Vector{}, false, nil
	}
	return e.Vector, true, nil
}

// Put stores v for the position and side.
func (c *Cache) Put(fen string, side position.Color, v features.Vector) error {
	data, err := json.Marshal(entry{FEN: fen, Side: side, Vector: v})
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(Key(fen, side), data)
	})
}

// Len counts the stored vectors.
func (c *Cache) Len() (int, error) {
	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
