package scheduling

import (
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
)

const (
	baseScore         = 100
	conflictPenalty   = 20
	dayPartBonus      = 10
	earlyStartPenalty = 20
	lateStartPenalty  = 15
	soonBonus         = 15
	thisWeekBonus     = 10
	soonWindow        = 3 * 24 * time.Hour
	thisWeekWindow    = 7 * 24 * time.Hour
	earlyStartHour    = 9
	lateStartHour     = 19
)

// scoreSlot applies the additive scoring rules. All terms are additive, so
// application order does not affect the result.
func scoreSlot(slot model.TimeInterval, conflicts int, preferred map[model.DayPart]struct{}, now time.Time) int {
	score := baseScore

	score -= conflicts * conflictPenalty

	hour := slot.From.Hour()

	// A slot earns at most one day-part bonus, for the window its start
	// hour falls into.
	if part, ok := hourDayPart(hour); ok {
		if _, isPreferred := preferred[part]; isPreferred {
			score += dayPartBonus
		}
	}

	if hour < earlyStartHour {
		score -= earlyStartPenalty
	}
	if hour >= lateStartHour {
		score -= lateStartPenalty
	}

	switch until := slot.From.Sub(now); {
	case until <= soonWindow:
		score += soonBonus
	case until <= thisWeekWindow:
		score += thisWeekBonus
	}

	return score
}

func hourDayPart(hour int) (model.DayPart, bool) {
	for _, part := range dayPartOrder {
		hours := dayPartHours[part]
		if hour >= hours[0] && hour < hours[1] {
			return part, true
		}
	}

	return 0, false
}
