package weight

// Entry represents a single weight measurement.
type Entry struct {
	ID         string  `json:"id"`
	RecordedAt int64   `json:"recordedAt"`
	Kilograms  float64 `json:"kilograms"`
	Note       string  `json:"note,omitempty"`
}
