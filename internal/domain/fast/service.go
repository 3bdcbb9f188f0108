package fast

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Service handles fasting-session business logic over a Store. The clock
// is injected so every aggregate the service produces is deterministic
// under test; production callers pass time.Now.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new fast service.
func NewService(store Store, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, logger: logger, now: now}
}

// StartRequest describes a fast-start request.
type StartRequest struct {
	PlanID         string
	TargetDuration float64
	Note           string
}

// EditRequest describes an edit to an existing fast. Nil fields are left
// unchanged; start and end times are immutable once set.
type EditRequest struct {
	Note           *string
	TargetDuration *float64
}

// Stats is the streak/hours summary over the full fast history.
type Stats struct {
	CurrentStreak int     `json:"currentStreak"`
	LongestStreak int     `json:"longestStreak"`
	TotalHours    float64 `json:"totalHours"`
	TotalFasts    int     `json:"totalFasts"`
}

// MonthView is the calendar aggregate for one month.
type MonthView struct {
	Days       map[string]CalendarDay `json:"days"`
	StreakDays []string               `json:"streakDays"`
	Stats      MonthlyStats           `json:"stats"`
}

// Start begins a new fast. At most one fast may be active at a time; the
// store's write path enforces the invariant, but the service checks first
// to return a clean error before allocating an id.
func (s *Service) Start(ctx context.Context, req StartRequest) (*Fast, error) {
	if current, err := s.Current(ctx); err != nil {
		return nil, err
	} else if current != nil {
		return nil, ErrActiveFastExists
	}

	f := Fast{
		ID:             uuid.NewString(),
		StartTime:      s.now().UnixMilli(),
		TargetDuration: req.TargetDuration,
		Note:           req.Note,
	}
	if req.PlanID != "" {
		plan, ok := PlanByID(req.PlanID)
		if !ok {
			return nil, ErrUnknownPlan
		}
		f.PlanID = plan.ID
		f.PlanName = plan.Name
		if f.TargetDuration == 0 {
			f.TargetDuration = plan.FastHours
		}
	}
	if f.TargetDuration <= 0 {
		return nil, fmt.Errorf("%w: target duration must be positive", ErrInvalidInput)
	}

	if err := s.store.SaveFast(ctx, f); err != nil {
		return nil, fmt.Errorf("saving fast: %w", err)
	}

	s.logger.Info("fast started", "id", f.ID, "plan", f.PlanID, "target_hours", f.TargetDuration)
	return &f, nil
}

// End finishes the active fast, setting its end time and marking it
// completed. Completed means the user explicitly ended the fast, whether
// or not the duration met the target.
func (s *Service) End(ctx context.Context) (*Fast, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoActiveFast
	}

	end := s.now().UnixMilli()
	if end < current.StartTime {
		end = current.StartTime
	}
	current.EndTime = &end
	current.Completed = true

	if err := s.store.SaveFast(ctx, *current); err != nil {
		return nil, fmt.Errorf("saving fast: %w", err)
	}

	s.logger.Info("fast ended", "id", current.ID,
		"hours", current.DurationHours(), "met_target", current.MetTarget())
	return current, nil
}

// Edit updates a fast's note or target duration.
func (s *Service) Edit(ctx context.Context, id string, req EditRequest) (*Fast, error) {
	f, err := s.store.GetFast(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Note != nil {
		f.Note = *req.Note
	}
	if req.TargetDuration != nil {
		if *req.TargetDuration <= 0 {
			return nil, fmt.Errorf("%w: target duration must be positive", ErrInvalidInput)
		}
		f.TargetDuration = *req.TargetDuration
	}
	if err := s.store.SaveFast(ctx, f); err != nil {
		return nil, fmt.Errorf("saving fast: %w", err)
	}
	return &f, nil
}

// Delete removes a fast from the store.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteFast(ctx, id); err != nil {
		return err
	}
	s.logger.Info("fast deleted", "id", id)
	return nil
}

// Current returns the active fast, or nil when none is in progress.
func (s *Service) Current(ctx context.Context) (*Fast, error) {
	fasts, err := s.store.ListFasts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing fasts: %w", err)
	}
	for _, f := range fasts {
		if f.Active() {
			return &f, nil
		}
	}
	return nil, nil
}

// List returns all fasts in the store.
func (s *Service) List(ctx context.Context) ([]Fast, error) {
	return s.store.ListFasts(ctx)
}

// Stats computes the streak and hours summary over the full history.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	fasts, err := s.store.ListFasts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing fasts: %w", err)
	}
	now := s.now()
	return &Stats{
		CurrentStreak: CurrentStreak(fasts, now),
		LongestStreak: LongestStreak(fasts, now.Location()),
		TotalHours:    TotalHours(fasts),
		TotalFasts:    len(fasts),
	}, nil
}

// Month computes the calendar view for one month.
func (s *Service) Month(ctx context.Context, year int, month time.Month) (*MonthView, error) {
	fasts, err := s.store.ListFasts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing fasts: %w", err)
	}
	loc := s.now().Location()

	streakSet := StreakDays(fasts, loc)
	streakDays := make([]string, 0, len(streakSet))
	for day := range streakSet {
		streakDays = append(streakDays, day)
	}
	sort.Strings(streakDays)

	return &MonthView{
		Days:       FastsForMonth(fasts, year, month, loc),
		StreakDays: streakDays,
		Stats:      ComputeMonthlyStats(fasts, year, month, loc),
	}, nil
}
