// Package logbook persists decoded dives in an embedded pebble store.
package logbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/HonzaMatousek/libdivecomputer/pkg/divecomputer"
)

// ErrNotFound is returned when no dive exists under the requested id.
var ErrNotFound = errors.New("dive not found")

// keyPrefix namespaces dive records; ids are ksuids, so keys sort by
// import time.
const keyPrefix = "dive/"

// Dive is the stored form of a decoded dump.
type Dive struct {
	ID          string                `json:"id"`
	Family      string                `json:"family"`
	ImportedAt  time.Time             `json:"imported_at"`
	StartTime   time.Time             `json:"start_time"`
	DiveTime    float64               `json:"dive_time_s"`
	MaxDepth    float64               `json:"max_depth_m"`
	GasMixCount int                   `json:"gas_mix_count"`
	Samples     []divecomputer.Sample `json:"samples,omitempty"`
}

// FromResult converts a decode result into a storable dive.
func FromResult(result divecomputer.Result) (Dive, error) {
	fs := result.FieldSet()
	divetime, err := fs.Float("dive_time_s")
	if err != nil {
		return Dive{}, err
	}
	maxdepth, err := fs.Float("max_depth_m")
	if err != nil {
		return Dive{}, err
	}
	gasmixes, err := fs.Int("gas_mix_count")
	if err != nil {
		return Dive{}, err
	}
	return Dive{
		Family:      result.Family,
		StartTime:   result.StartTime,
		DiveTime:    divetime,
		MaxDepth:    maxdepth,
		GasMixCount: int(gasmixes),
		Samples:     result.Samples,
	}, nil
}

// Store is a pebble-backed dive log.
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the dive log at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open logbook: %w", err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores the dive and returns its id. A dive without an id is assigned
// a fresh ksuid; a dive with an id is overwritten in place.
func (s *Store) Put(dive Dive) (string, error) {
	if dive.ID == "" {
		dive.ID = ksuid.New().String()
	}
	if dive.ImportedAt.IsZero() {
		dive.ImportedAt = time.Now().UTC()
	}
	data, err := json.Marshal(dive)
	if err != nil {
		return "", fmt.Errorf("encode dive: %w", err)
	}
	if err := s.db.Set(key(dive.ID), data, pebble.NoSync); err != nil {
		return "", fmt.Errorf("store dive: %w", err)
	}
	return dive.ID, nil
}

// Get returns the dive stored under id.
func (s *Store) Get(id string) (Dive, error) {
	data, closer, err := s.db.Get(key(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return Dive{}, fmt.Errorf("dive %q: %w", id, ErrNotFound)
		}
		return Dive{}, fmt.Errorf("load dive: %w", err)
	}
	defer closer.Close()

	var dive Dive
	if err := json.Unmarshal(data, &dive); err != nil {
		return Dive{}, fmt.Errorf("decode dive %q: %w", id, err)
	}
	return dive, nil
}

// Delete removes the dive stored under id.
func (s *Store) Delete(id string) error {
	_, closer, err := s.db.Get(key(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return fmt.Errorf("dive %q: %w", id, ErrNotFound)
		}
		return fmt.Errorf("check dive: %w", err)
	}
	// Get lends a read handle that must be closed even though the value
	// is unused.
	if err := closer.Close(); err != nil {
		return fmt.Errorf("check dive: %w", err)
	}
	if err := s.db.Delete(key(id), pebble.NoSync); err != nil {
		return fmt.Errorf("delete dive: %w", err)
	}
	return nil
}

// List returns all stored dives in import order. Records that fail to
// decode are skipped.
func (s *Store) List() ([]Dive, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte(keyPrefix + "\xff"),
	})
	if err != nil {
		return nil, fmt.Errorf("list dives: %w", err)
	}
	defer iter.Close()

	var dives []Dive
	for iter.First(); iter.Valid(); iter.Next() {
		var dive Dive
		if err := json.Unmarshal(iter.Value(), &dive); err != nil {
			continue
		}
		dives = append(dives, dive)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("list dives: %w", err)
	}
	return dives, nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}
