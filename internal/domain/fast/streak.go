package fast

import (
	"sort"
	"time"
)

// completedDays returns the distinct day keys that have at least one
// completed, ended fast. Input order and same-day duplicates don't matter.
func completedDays(fasts []Fast, loc *time.Location) map[string]struct{} {
	days := make(map[string]struct{})
	for _, f := range fasts {
		if !f.Completed || f.EndTime == nil {
			continue
		}
		days[DayKeyMillis(*f.EndTime, loc)] = struct{}{}
	}
	return days
}

// CurrentStreak computes the current consecutive-day streak: counting
// backward from the most recent day with a completed fast, the number of
// consecutive calendar days that each contain at least one completed fast.
// The walk anchors at the most recent fast day present, so a missing fast
// today does not by itself break a streak anchored at yesterday. Returns 0
// when there are no completed fasts. now supplies the location used for
// day bucketing.
func CurrentStreak(fasts []Fast, now time.Time) int {
	days := completedDays(fasts, now.Location())
	if len(days) == 0 {
		return 0
	}

	var latest string
	for day := range days {
		if day > latest {
			latest = day
		}
	}

	streak := 0
	for day := latest; ; day = prevDayKey(day) {
		if _, ok := days[day]; !ok {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak computes the length of the longest run of consecutive
// calendar days with a completed fast anywhere in the history, not just
// the most recent run. Returns 0 for an empty history.
func LongestStreak(fasts []Fast, loc *time.Location) int {
	dayset := completedDays(fasts, loc)
	if len(dayset) == 0 {
		return 0
	}

	days := make([]string, 0, len(dayset))
	for day := range dayset {
		days = append(days, day)
	}
	sort.Strings(days)

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if isNextDay(days[i-1], days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// TotalHours sums the durations of all completed, ended fasts. Active
// fasts and fasts not marked completed contribute nothing. No rounding is
// applied; formatting is a presentation concern.
func TotalHours(fasts []Fast) float64 {
	var total float64
	for _, f := range fasts {
		if !f.Completed {
			continue
		}
		total += f.DurationHours()
	}
	return total
}
