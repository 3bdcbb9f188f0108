package weight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fastwell/fastwell/internal/domain/fast"
	"github.com/google/uuid"
)

var (
	// ErrEntryNotFound indicates the weight entry doesn't exist.
	ErrEntryNotFound = errors.New("weight entry not found")
	// ErrInvalidWeight indicates a non-positive weight value.
	ErrInvalidWeight = errors.New("weight must be positive")
)

// Store is the persistence port for weight entries.
type Store interface {
	SaveWeight(ctx context.Context, e Entry) error
	ListWeights(ctx context.Context) ([]Entry, error)
	DeleteWeight(ctx context.Context, id string) error
}

// Service handles weight-log business logic.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new weight service.
func NewService(store Store, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, logger: logger, now: now}
}

// Add records a weight measurement at the current instant.
func (s *Service) Add(ctx context.Context, kilograms float64, note string) (*Entry, error) {
	if kilograms <= 0 {
		return nil, ErrInvalidWeight
	}
	e := Entry{
		ID:         uuid.NewString(),
		RecordedAt: s.now().UnixMilli(),
		Kilograms:  kilograms,
		Note:       note,
	}
	if err := s.store.SaveWeight(ctx, e); err != nil {
		return nil, fmt.Errorf("saving weight entry: %w", err)
	}
	s.logger.Info("weight logged", "id", e.ID, "kg", e.Kilograms)
	return &e, nil
}

// List returns all weight entries, most recent first.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.store.ListWeights(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].RecordedAt > entries[j].RecordedAt
	})
	return entries, nil
}

// Delete removes a weight entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteWeight(ctx, id)
}

// ForDay returns the latest measurement on the given local calendar day,
// or nil when none was recorded that day.
func (s *Service) ForDay(ctx context.Context, dayKey string, loc *time.Location) (*Entry, error) {
	entries, err := s.store.ListWeights(ctx)
	if err != nil {
		return nil, err
	}
	var latest *Entry
	for i := range entries {
		e := entries[i]
		if fast.DayKeyMillis(e.RecordedAt, loc) != dayKey {
			continue
		}
		if latest == nil || e.RecordedAt > latest.RecordedAt {
			latest = &e
		}
	}
	return latest, nil
}
