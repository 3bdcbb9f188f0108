package water_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/fastwell/fastwell/internal/domain/water"
	"github.com/fastwell/fastwell/internal/store"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, clock *time.Time) *water.Service {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "fastwell.json"))
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return water.NewService(s, logger, func() time.Time { return *clock })
}

func TestWaterService_AddRejectsZero(t *testing.T) {
	clock := time.Date(2025, time.March, 15, 8, 0, 0, 0, time.UTC)
	svc := newService(t, &clock)

	_, err := svc.Add(context.Background(), 0)
	require.ErrorIs(t, err, water.ErrInvalidAmount)
}

func TestWaterService_DayTotalSumsOneDay(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, time.March, 15, 8, 0, 0, 0, time.UTC)
	svc := newService(t, &clock)

	_, err := svc.Add(ctx, 250)
	require.NoError(t, err)
	clock = clock.Add(4 * time.Hour)
	_, err = svc.Add(ctx, 500)
	require.NoError(t, err)
	// Undo an over-count with a negative delta.
	clock = clock.Add(time.Minute)
	_, err = svc.Add(ctx, -250)
	require.NoError(t, err)
	// Next day does not count.
	clock = clock.Add(24 * time.Hour)
	_, err = svc.Add(ctx, 1000)
	require.NoError(t, err)

	total, err := svc.DayTotal(ctx, "2025-03-15", time.UTC)
	require.NoError(t, err)
	require.Equal(t, 500.0, total)

	total, err = svc.DayTotal(ctx, "2025-03-17", time.UTC)
	require.NoError(t, err)
	require.Equal(t, 0.0, total)
}

func TestWaterService_RecentLimitsAndOrders(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, time.March, 15, 8, 0, 0, 0, time.UTC)
	svc := newService(t, &clock)

	for i := 0; i < 5; i++ {
		_, err := svc.Add(ctx, float64(100*(i+1)))
		require.NoError(t, err)
		clock = clock.Add(time.Hour)
	}

	events, err := svc.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, 500.0, events[0].Milliliters)
	require.Equal(t, 300.0, events[2].Milliliters)
}

func TestWaterService_DeleteIsTolerant(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, time.March, 15, 8, 0, 0, 0, time.UTC)
	svc := newService(t, &clock)

	e, err := svc.Add(ctx, 250)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, e.ID))
	require.NoError(t, svc.Delete(ctx, e.ID))
}
