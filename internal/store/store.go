// Package store persists game records in BadgerDB so hosted games survive
// a server restart. Each record holds the position as a FEN string plus
// the session metadata needed to rebuild it.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gamePrefix = "game:"

// ErrNotFound indicates no record exists for the requested game.
var ErrNotFound = errors.New("game record not found")

// Record is the stored form of a hosted game.
type Record struct {
	ID        string    `json:"id"`
	FEN       string    `json:"fen"`
	White     string    `json:"white"`
	Black     string    `json:"black"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store wraps a BadgerDB instance.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open game store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame writes the record, overwriting any previous version.
func (s *Store) SaveGame(r Record) error {
	r.UpdatedAt = time.Now()

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(r.ID), data)
	})
}

// LoadGame reads one record by game ID.
func (s *Store) LoadGame(id string) (Record, error) {
	var r Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	return r, err
}

// DeleteGame removes a record. Deleting a missing record is not an error.
func (s *Store) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(id))
	})
}

// ListGames returns every stored record.
func (s *Store) ListGames() ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r Record
				if err := json.Unmarshal(val, &r); err != nil {
					return err
				}
				records = append(records, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return records, err
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}
