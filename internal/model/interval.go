package model

import "time"

// TimeInterval is a half-open time span [From, To).
// Callers must not construct zero-length or inverted intervals.
type TimeInterval struct {
	From time.Time
	To   time.Time
}

func (i TimeInterval) IsValid() bool {
	return i.From.Before(i.To)
}

func (i TimeInterval) Duration() time.Duration {
	return i.To.Sub(i.From)
}
