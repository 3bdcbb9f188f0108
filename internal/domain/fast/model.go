package fast

import "time"

const millisPerHour = float64(time.Hour / time.Millisecond)

// Fast represents one tracked fasting session.
type Fast struct {
	ID             string  `json:"id"`
	StartTime      int64   `json:"startTime"`
	EndTime        *int64  `json:"endTime,omitempty"`
	TargetDuration float64 `json:"targetDuration"`
	PlanID         string  `json:"planId,omitempty"`
	PlanName       string  `json:"planName,omitempty"`
	Completed      bool    `json:"completed"`
	Note           string  `json:"note,omitempty"`
}

// Ended reports whether the fast has an end time.
func (f Fast) Ended() bool {
	return f.EndTime != nil
}

// Active reports whether the fast is still in progress.
func (f Fast) Active() bool {
	return f.EndTime == nil
}

// DurationHours returns the fast's duration in hours. An active fast, or a
// record with no usable start time, contributes 0.
func (f Fast) DurationHours() float64 {
	if f.EndTime == nil || f.StartTime <= 0 {
		return 0
	}
	return float64(*f.EndTime-f.StartTime) / millisPerHour
}

// MetTarget reports whether the fast's actual duration reached its target.
func (f Fast) MetTarget() bool {
	return f.Ended() && f.DurationHours() >= f.TargetDuration
}

// CalendarDay aggregates the fasts that ended on one local calendar day.
// Completed counts ended fasts on that day regardless of the Completed
// flag; calendar density reflects ended fasts, while streak counting
// requires the flag (see CurrentStreak).
type CalendarDay struct {
	Date       string  `json:"date"`
	Fasts      []Fast  `json:"fasts"`
	TotalHours float64 `json:"totalHours"`
	Completed  int     `json:"completed"`
}

// BestDay identifies the day of a month with the highest fasting hours.
type BestDay struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// MonthlyStats summarizes the fasts ending in one calendar month.
type MonthlyStats struct {
	FastCount      int      `json:"fastCount"`
	TotalHours     float64  `json:"totalHours"`
	AverageHours   float64  `json:"averageHours"`
	CompletionRate int      `json:"completionRate"`
	BestDay        *BestDay `json:"bestDay,omitempty"`
}
