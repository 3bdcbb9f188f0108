package water

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

// ErrInvalidAmount indicates a zero intake delta.
var ErrInvalidAmount = errors.New("water amount must be non-zero")

// Event represents a single water intake event. Milliliters may be
// negative to undo an over-count.
type Event struct {
	ID          string  `json:"id"`
	RecordedAt  int64   `json:"recordedAt"`
	Milliliters float64 `json:"milliliters"`
}

// Store is the persistence port for water events.
type Store interface {
	SaveWater(ctx context.Context, e Event) error
	ListWater(ctx context.Context) ([]Event, error)
	DeleteWater(ctx context.Context, id string) error
}

// Service handles water-log business logic.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new water service.
func NewService(store Store, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, logger: logger, now: now}
}

// Add records an intake event at the current instant.
func (s *Service) Add(ctx context.Context, milliliters float64) (*Event, error) {
	if milliliters == 0 {
		return nil, ErrInvalidAmount
	}
	e := Event{
		ID:          uuid.NewString(),
		RecordedAt:  s.now().UnixMilli(),
		Milliliters: milliliters,
	}
	if err := s.store.SaveWater(ctx, e); err != nil {
		return nil, fmt.Errorf("saving water event: %w", err)
	}
	s.logger.Info("water logged", "id", e.ID, "ml", e.Milliliters)
	return &e, nil
}

// DayTotal sums the intake recorded on the given local calendar day.
func (s *Service) DayTotal(ctx context.Context, dayKey string, loc *time.Location) (float64, error) {
	events, err := s.store.ListWater(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range events {
		if fast.DayKeyMillis(e.RecordedAt, loc) == dayKey {
			total += e.Milliliters
		}
	}
	return total, nil
}

// Recent returns up to limit events, most recent first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Event, error) {
	events, err := s.store.ListWater(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].RecordedAt > events[j].RecordedAt
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// Delete removes a water event.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.DeleteWater(ctx, id)
}
