// Package mcdb persists worlds in a leveldb database: chunk snapshots,
// per-dimension settings and offline player records. The record formats are
// a fixed binary layout; there is no versioned state to migrate in the Beta
// chunk model, so a single format byte guards against future change.
package mcdb

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
)

// DB wraps the shared leveldb handle. One DB serves every dimension of a
// server; per-dimension providers are derived from it.
type DB struct {
	ldb *leveldb.DB

	mu     sync.Mutex
	hashes map[string]uint64
}

// Open opens or creates the database directory.
func Open(dir string) (*DB, error) {
	ldb, err := leveldb.OpenFile(dir, &opt.Options{
		Compression: opt.SnappyCompression,
	})
	if err != nil {
		return nil, fmt.Errorf("opening world database: %w", err)
	}
	return &DB{ldb: ldb, hashes: make(map[string]uint64)}, nil
}

// Close flushes and closes the database.
func (db *DB) Close() error {
	return db.ldb.Close()
}

// get reads a key, mapping the leveldb not-found error to ok == false.
func (db *DB) get(key []byte) ([]byte, bool, error) {
	val, err := db.ldb.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// putIfChanged writes a key only when the payload hash differs from the last
// written one, which keeps the steady-state save pass cheap.
func (db *DB) putIfChanged(key, val []byte) error {
	h := xxhash.Sum64(val)
	k := string(key)
	db.mu.Lock()
	prev, seen := db.hashes[k]
	db.mu.Unlock()
	if seen && prev == h {
		return nil
	}
	if err := db.ldb.Put(key, val, nil); err != nil {
		return err
	}
	db.mu.Lock()
	db.hashes[k] = h
	db.mu.Unlock()
	return nil
}
