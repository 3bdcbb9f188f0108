package fast

import (
	"math"
	"time"
)

// FastsForMonth buckets fasts into a month grid. The result holds an entry
// for every calendar day of the month, including days with no fasts. A
// fast lands in the bucket of the day its EndTime falls on; active fasts
// are excluded entirely. Completed counts the ended fasts assigned to the
// day regardless of the Completed flag — intentionally more permissive
// than the streak calculator.
func FastsForMonth(fasts []Fast, year int, month time.Month, loc *time.Location) map[string]CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	grid := make(map[string]CalendarDay, daysInMonth)
	for d := 0; d < daysInMonth; d++ {
		key := DayKey(first.AddDate(0, 0, d))
		grid[key] = CalendarDay{Date: key, Fasts: []Fast{}}
	}

	for _, f := range fasts {
		if f.EndTime == nil {
			continue
		}
		key := DayKeyMillis(*f.EndTime, loc)
		day, ok := grid[key]
		if !ok {
			continue
		}
		day.Fasts = append(day.Fasts, f)
		day.TotalHours += f.DurationHours()
		day.Completed++
		grid[key] = day
	}

	return grid
}

// StreakDays returns the set of day keys with at least one ended fast,
// independent of the Completed flag. Used for calendar-cell highlighting;
// distinct from the streak count, which requires completed fasts.
func StreakDays(fasts []Fast, loc *time.Location) map[string]struct{} {
	days := make(map[string]struct{})
	for _, f := range fasts {
		if f.EndTime == nil {
			continue
		}
		days[DayKeyMillis(*f.EndTime, loc)] = struct{}{}
	}
	return days
}

// ComputeMonthlyStats summarizes the fasts whose EndTime falls in the
// given month: count, total hours and average duration (one decimal
// place), the percentage of fasts whose duration met their target
// (rounded to the nearest integer), and the day with the highest total
// hours (first in date order on ties, nil when the month is empty).
func ComputeMonthlyStats(fasts []Fast, year int, month time.Month, loc *time.Location) MonthlyStats {
	grid := FastsForMonth(fasts, year, month, loc)

	stats := MonthlyStats{}
	var totalHours float64
	metTarget := 0

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	var best *BestDay
	for d := 0; d < daysInMonth; d++ {
		key := DayKey(first.AddDate(0, 0, d))
		day := grid[key]
		for _, f := range day.Fasts {
			stats.FastCount++
			totalHours += f.DurationHours()
			if f.MetTarget() {
				metTarget++
			}
		}
		if day.TotalHours > 0 && (best == nil || day.TotalHours > best.Hours) {
			best = &BestDay{Date: key, Hours: round1(day.TotalHours)}
		}
	}

	stats.TotalHours = round1(totalHours)
	if stats.FastCount > 0 {
		stats.AverageHours = round1(totalHours / float64(stats.FastCount))
		stats.CompletionRate = int(math.Round(float64(metTarget) / float64(stats.FastCount) * 100))
	}
	stats.BestDay = best
	return stats
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
