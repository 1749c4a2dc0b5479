package scheduling

import (
	"sort"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/business/availability"
	"github.com/ansokolv/social-calendar-backend/internal/model"
)

const maxResults = 10

// Day-part hour ranges are fixed policy, as is skipping weekends.
var dayPartHours = map[model.DayPart][2]int{
	model.DayPartMorning:   {9, 12},
	model.DayPartAfternoon: {13, 17},
	model.DayPartEvening:   {18, 20},
}

// dayPartOrder fixes generation order inside a day, which in turn fixes the
// tie-break between equally scored slots.
var dayPartOrder = []model.DayPart{
	model.DayPartMorning,
	model.DayPartAfternoon,
	model.DayPartEvening,
}

type Request struct {
	DurationMinutes int
	RangeStart      time.Time
	RangeEnd        time.Time
	DayParts        []model.DayPart
	// Participants includes the requester; the requester's own busy
	// intervals count as conflicts the same way anyone else's do.
	Participants []*model.Participant
}

// GenerateSlots enumerates hourly candidates of the requested duration over
// the date range and preferred day parts, scores each and returns the best
// ten. An impossible request (no weekday in range, no day parts, non-positive
// duration) yields an empty result, not an error; the caller is expected to
// widen the constraints.
func GenerateSlots(req *Request, now time.Time) []*model.CandidateSlot {
	if req.DurationMinutes <= 0 || len(req.DayParts) == 0 || req.RangeEnd.Before(req.RangeStart) {
		return nil
	}

	selected := make(map[model.DayPart]struct{}, len(req.DayParts))
	for _, p := range req.DayParts {
		selected[p] = struct{}{}
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute

	var candidates []*model.CandidateSlot

	start := req.RangeStart.Truncate(24 * time.Hour)
	end := req.RangeEnd

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		for _, part := range dayPartOrder {
			if _, ok := selected[part]; !ok {
				continue
			}

			hours := dayPartHours[part]
			for h := hours[0]; h < hours[1]; h++ {
				slot := model.TimeInterval{
					From: day.Add(time.Duration(h) * time.Hour),
					To:   day.Add(time.Duration(h)*time.Hour + duration),
				}

				verdict := availability.Check(slot, req.Participants)

				candidates = append(candidates, &model.CandidateSlot{
					Interval:         slot,
					Available:        verdict.Available,
					ConflictingNames: verdict.ConflictingNames,
					Score:            scoreSlot(slot, len(verdict.ConflictingNames), selected, now),
				})
			}
		}
	}

	// Stable sort keeps earlier days and hours first among equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	return candidates
}
