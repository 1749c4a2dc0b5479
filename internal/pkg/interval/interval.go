// Package interval holds the overlap arithmetic the scheduling and conflict
// code is built on. Everything here is pure; malformed intervals are a caller
// precondition violation, not a runtime failure.
package interval

import (
	"github.com/ansokolv/social-calendar-backend/internal/model"
)

// Overlaps reports whether a and b share any instant. Intervals are half-open,
// so two intervals that only touch at a boundary do not overlap.
func Overlaps(a, b model.TimeInterval) bool {
	return a.From.Before(b.To) && b.From.Before(a.To)
}

// HasConflict reports whether candidate overlaps any of the existing
// intervals.
func HasConflict(candidate model.TimeInterval, existing []model.TimeInterval) bool {
	for _, e := range existing {
		if Overlaps(candidate, e) {
			return true
		}
	}

	return false
}
