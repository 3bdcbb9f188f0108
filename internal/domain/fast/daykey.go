package fast

import "time"

const dayKeyLayout = "2006-01-02"

// DayKey returns the calendar-day bucket key (YYYY-MM-DD) for an instant,
// in the instant's location. Two instants share a key iff they fall on the
// same local calendar day. Days are whatever the local year/month/date
// triple reports; callers must not assume 24-hour-exact boundaries across
// DST transitions.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// DayKeyMillis buckets a unix-millisecond instant in the given location.
func DayKeyMillis(ms int64, loc *time.Location) string {
	return DayKey(time.UnixMilli(ms).In(loc))
}

// parseDayKey turns a day key back into a date pinned to UTC midnight.
// Keys are opaque dates, so consecutive-day arithmetic happens in UTC
// where AddDate is immune to DST.
func parseDayKey(key string) (time.Time, bool) {
	t, err := time.ParseInLocation(dayKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// prevDayKey returns the key for the calendar day before key.
func prevDayKey(key string) string {
	t, ok := parseDayKey(key)
	if !ok {
		return ""
	}
	return DayKey(t.AddDate(0, 0, -1))
}

// isNextDay reports whether b is exactly one calendar day after a.
func isNextDay(a, b string) bool {
	t, ok := parseDayKey(a)
	if !ok {
		return false
	}
	return DayKey(t.AddDate(0, 0, 1)) == b
}
