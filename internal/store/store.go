// Package store persists the device-local tracking data (fasts, weight,
// water, progress photos) as a single JSON document. Writes are atomic:
// the document is marshaled, written to a temp file, and renamed into
// place, so a reader never observes a partially written record.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fastwell/fastwell/internal/domain/fast"
	"github.com/fastwell/fastwell/internal/domain/photo"
	"github.com/fastwell/fastwell/internal/domain/water"
	"github.com/fastwell/fastwell/internal/domain/weight"
)

// ErrInvalidFast indicates a fast record that fails shape validation at
// the store boundary: empty id, zero start time, or an end time before
// the start time. Aggregators above the store never re-validate.
var ErrInvalidFast = errors.New("invalid fast record")

type document struct {
	Version int                     `json:"version"`
	Fasts   map[string]fast.Fast    `json:"fasts"`
	Weights map[string]weight.Entry `json:"weights"`
	Water   map[string]water.Event  `json:"water"`
	Photos  map[string]photo.Photo  `json:"photos"`
}

// JSONStore is a file-backed store for one device profile. It implements
// the fast, weight, water, and photo persistence ports.
type JSONStore struct {
	path string

	mu  sync.Mutex
	doc *document
}

// Open loads the store at path, creating an empty document if the file
// doesn't exist yet.
func Open(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.doc = emptyDocument()
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parse store: %w", err)
	}
	if doc.Fasts == nil {
		doc.Fasts = make(map[string]fast.Fast)
	}
	if doc.Weights == nil {
		doc.Weights = make(map[string]weight.Entry)
	}
	if doc.Water == nil {
		doc.Water = make(map[string]water.Event)
	}
	if doc.Photos == nil {
		doc.Photos = make(map[string]photo.Photo)
	}
	s.doc = doc
	return s, nil
}

func emptyDocument() *document {
	return &document{
		Version: 1,
		Fasts:   make(map[string]fast.Fast),
		Weights: make(map[string]weight.Entry),
		Water:   make(map[string]water.Event),
		Photos:  make(map[string]photo.Photo),
	}
}

// save writes the document atomically. Callers hold s.mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fastwell-*")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// SaveFast upserts a fast by id. Re-saving an existing id replaces the
// stored record in place; it never duplicates. A save that would leave
// two active fasts in the store is rejected.
func (s *JSONStore) SaveFast(_ context.Context, f fast.Fast) error {
	if f.ID == "" || f.StartTime <= 0 {
		return ErrInvalidFast
	}
	if f.EndTime != nil && *f.EndTime < f.StartTime {
		return ErrInvalidFast
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Active() {
		for id, existing := range s.doc.Fasts {
			if id != f.ID && existing.Active() {
				return fast.ErrActiveFastExists
			}
		}
	}

	s.doc.Fasts[f.ID] = f
	return s.save()
}

// GetFast retrieves a fast by id.
func (s *JSONStore) GetFast(_ context.Context, id string) (fast.Fast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.doc.Fasts[id]
	if !ok {
		return fast.Fast{}, fast.ErrFastNotFound
	}
	return f, nil
}

// ListFasts returns a snapshot of all fasts, ordered by start time.
func (s *JSONStore) ListFasts(_ context.Context) ([]fast.Fast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fasts := make([]fast.Fast, 0, len(s.doc.Fasts))
	for _, f := range s.doc.Fasts {
		fasts = append(fasts, f)
	}
	sort.Slice(fasts, func(i, j int) bool {
		return fasts[i].StartTime < fasts[j].StartTime
	})
	return fasts, nil
}

// DeleteFast removes a fast by id.
func (s *JSONStore) DeleteFast(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Fasts[id]; !ok {
		return fast.ErrFastNotFound
	}
	delete(s.doc.Fasts, id)
	return s.save()
}

// SaveWeight upserts a weight entry by id.
func (s *JSONStore) SaveWeight(_ context.Context, e weight.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Weights[e.ID] = e
	return s.save()
}

// ListWeights returns a snapshot of all weight entries.
func (s *JSONStore) ListWeights(_ context.Context) ([]weight.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]weight.Entry, 0, len(s.doc.Weights))
	for _, e := range s.doc.Weights {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RecordedAt < entries[j].RecordedAt
	})
	return entries, nil
}

// DeleteWeight removes a weight entry by id.
func (s *JSONStore) DeleteWeight(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Weights[id]; !ok {
		return weight.ErrEntryNotFound
	}
	delete(s.doc.Weights, id)
	return s.save()
}

// SaveWater upserts a water event by id.
func (s *JSONStore) SaveWater(_ context.Context, e water.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Water[e.ID] = e
	return s.save()
}

// ListWater returns a snapshot of all water events.
func (s *JSONStore) ListWater(_ context.Context) ([]water.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]water.Event, 0, len(s.doc.Water))
	for _, e := range s.doc.Water {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].RecordedAt < events[j].RecordedAt
	})
	return events, nil
}

// DeleteWater removes a water event by id.
func (s *JSONStore) DeleteWater(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.doc.Water, id)
	return s.save()
}

// SavePhoto upserts photo metadata by id.
func (s *JSONStore) SavePhoto(_ context.Context, p photo.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Photos[p.ID] = p
	return s.save()
}

// ListPhotos returns a snapshot of all photo metadata.
func (s *JSONStore) ListPhotos(_ context.Context) ([]photo.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	photos := make([]photo.Photo, 0, len(s.doc.Photos))
	for _, p := range s.doc.Photos {
		photos = append(photos, p)
	}
	sort.Slice(photos, func(i, j int) bool {
		return photos[i].TakenAt < photos[j].TakenAt
	})
	return photos, nil
}

// DeletePhoto removes photo metadata by id.
func (s *JSONStore) DeletePhoto(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Photos[id]; !ok {
		return photo.ErrPhotoNotFound
	}
	delete(s.doc.Photos, id)
	return s.save()
}
