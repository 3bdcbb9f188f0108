package fast

import "errors"

var (
	// ErrFastNotFound indicates the fast doesn't exist in the store.
	ErrFastNotFound = errors.New("fast not found")
	// ErrActiveFastExists indicates a fast is already in progress.
	ErrActiveFastExists = errors.New("a fast is already in progress")
	// ErrNoActiveFast indicates no fast is currently in progress.
	ErrNoActiveFast = errors.New("no fast in progress")
	// ErrFastEnded indicates the fast has already been ended.
	ErrFastEnded = errors.New("fast already ended")
	// ErrUnknownPlan indicates the plan id doesn't match a built-in plan.
	ErrUnknownPlan = errors.New("unknown fasting plan")
	// ErrInvalidInput indicates invalid input for fast operations.
	ErrInvalidInput = errors.New("invalid fast input")
)
