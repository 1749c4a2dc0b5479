package scheduling

import (
	"testing"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
)

// Monday 2022-03-14.
var monday = time.Date(2022, time.March, 14, 0, 0, 0, 0, time.UTC)

func weekRequest(participants ...*model.Participant) *Request {
	return &Request{
		DurationMinutes: 60,
		RangeStart:      monday,
		RangeEnd:        monday.AddDate(0, 0, 6), // through Sunday
		DayParts:        []model.DayPart{model.DayPartMorning},
		Participants:    participants,
	}
}

func TestGenerateSlotsSkipsWeekends(t *testing.T) {
	slots := GenerateSlots(weekRequest(&model.Participant{ID: 1, DisplayName: "Anna"}), monday)

	if len(slots) == 0 {
		t.Fatal("expected candidates for a week range")
	}
	for _, s := range slots {
		if wd := s.Interval.From.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("candidate on %v, weekends must be skipped", wd)
		}
	}
}

func TestGenerateSlotsRespectsMaxAndOrdering(t *testing.T) {
	req := weekRequest(&model.Participant{ID: 1, DisplayName: "Anna"})
	req.DayParts = []model.DayPart{model.DayPartMorning, model.DayPartAfternoon, model.DayPartEvening}

	slots := GenerateSlots(req, monday)

	if len(slots) > 10 {
		t.Errorf("got %d candidates, maximum is 10", len(slots))
	}
	for i := 1; i < len(slots); i++ {
		if slots[i].Score > slots[i-1].Score {
			t.Errorf("scores not non-increasing at %d: %d > %d", i, slots[i].Score, slots[i-1].Score)
		}
	}
}

func TestGenerateSlotsEmptyOnImpossibleRequest(t *testing.T) {
	saturday := time.Date(2022, time.March, 19, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "no day parts",
			req: &Request{
				DurationMinutes: 30,
				RangeStart:      monday,
				RangeEnd:        monday.AddDate(0, 0, 4),
			},
		},
		{
			name: "weekend only range",
			req: &Request{
				DurationMinutes: 30,
				RangeStart:      saturday,
				RangeEnd:        saturday.AddDate(0, 0, 1),
				DayParts:        []model.DayPart{model.DayPartMorning},
			},
		},
		{
			name: "non-positive duration",
			req: &Request{
				DurationMinutes: 0,
				RangeStart:      monday,
				RangeEnd:        monday.AddDate(0, 0, 4),
				DayParts:        []model.DayPart{model.DayPartMorning},
			},
		},
		{
			name: "inverted range",
			req: &Request{
				DurationMinutes: 30,
				RangeStart:      monday,
				RangeEnd:        monday.AddDate(0, 0, -1),
				DayParts:        []model.DayPart{model.DayPartMorning},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if slots := GenerateSlots(tt.req, monday); len(slots) != 0 {
				t.Errorf("got %d candidates, want none", len(slots))
			}
		})
	}
}

func TestGenerateSlotsConflictPenalty(t *testing.T) {
	// Anna is busy exactly over the 9:00 slot on Monday.
	busy := model.TimeInterval{
		From: monday.Add(9 * time.Hour),
		To:   monday.Add(10 * time.Hour),
	}

	req := &Request{
		DurationMinutes: 60,
		RangeStart:      monday,
		RangeEnd:        monday,
		DayParts:        []model.DayPart{model.DayPartMorning},
		Participants: []*model.Participant{
			{ID: 1, DisplayName: "Owner"},
			{ID: 2, DisplayName: "Anna", BusyIntervals: []model.TimeInterval{busy}},
			{ID: 3, DisplayName: "Boris"},
		},
	}

	slots := GenerateSlots(req, monday)
	if len(slots) != 3 {
		t.Fatalf("got %d candidates, want 3 morning slots", len(slots))
	}

	var conflicted, clean *model.CandidateSlot
	for _, s := range slots {
		if s.Interval.From.Equal(busy.From) {
			conflicted = s
		} else if clean == nil {
			clean = s
		}
	}
	if conflicted == nil || clean == nil {
		t.Fatal("expected both a conflicted and a clean candidate")
	}

	if len(conflicted.ConflictingNames) != 1 || conflicted.ConflictingNames[0] != "Anna" {
		t.Errorf("conflicting names = %v, want [Anna]", conflicted.ConflictingNames)
	}
	if got, want := clean.Score-conflicted.Score, conflictPenalty; got != want {
		t.Errorf("score gap = %d, want exactly one conflict penalty %d", got, want)
	}
	if conflicted.Available[2] {
		t.Error("Anna must be marked unavailable for the conflicted slot")
	}
	if !conflicted.Available[1] || !conflicted.Available[3] {
		t.Error("owner and Boris must be available for the conflicted slot")
	}
}

func TestGenerateSlotsCleanSlotNeverScoresBelowConflicted(t *testing.T) {
	busy := model.TimeInterval{
		From: monday.Add(10 * time.Hour),
		To:   monday.Add(11 * time.Hour),
	}

	req := &Request{
		DurationMinutes: 60,
		RangeStart:      monday,
		RangeEnd:        monday,
		DayParts:        []model.DayPart{model.DayPartMorning},
		Participants: []*model.Participant{
			{ID: 1, DisplayName: "Anna", BusyIntervals: []model.TimeInterval{busy}},
		},
	}

	slots := GenerateSlots(req, monday)
	for _, s := range slots {
		if len(s.ConflictingNames) == 0 {
			for _, other := range slots {
				if len(other.ConflictingNames) > 0 && other.Score > s.Score {
					t.Errorf("conflicted slot %v outscores clean slot %v", other.Interval.From, s.Interval.From)
				}
			}
		}
	}
}

func TestScoreSlotLateStartPenalty(t *testing.T) {
	preferred := map[model.DayPart]struct{}{model.DayPartEvening: {}}

	early := model.TimeInterval{From: monday.Add(18 * time.Hour), To: monday.Add(19 * time.Hour)}
	late := model.TimeInterval{From: monday.Add(19 * time.Hour), To: monday.Add(20 * time.Hour)}

	if got, want := scoreSlot(early, 0, preferred, monday), baseScore+dayPartBonus+soonBonus; got != want {
		t.Errorf("18:00 slot score = %d, want %d", got, want)
	}
	if got, want := scoreSlot(late, 0, preferred, monday), baseScore+dayPartBonus+soonBonus-lateStartPenalty; got != want {
		t.Errorf("19:00 slot score = %d, want %d", got, want)
	}
}

func TestScoreSlotRecencyBonusIsNotCumulative(t *testing.T) {
	preferred := map[model.DayPart]struct{}{model.DayPartMorning: {}}
	slot := func(daysAhead int) model.TimeInterval {
		from := monday.AddDate(0, 0, daysAhead).Add(9 * time.Hour)
		return model.TimeInterval{From: from, To: from.Add(time.Hour)}
	}

	within3 := scoreSlot(slot(2), 0, preferred, monday)
	within7 := scoreSlot(slot(5), 0, preferred, monday)
	beyond7 := scoreSlot(slot(10), 0, preferred, monday)

	if within3 != baseScore+dayPartBonus+soonBonus {
		t.Errorf("slot within 3 days score = %d", within3)
	}
	if within7 != baseScore+dayPartBonus+thisWeekBonus {
		t.Errorf("slot within 7 days score = %d", within7)
	}
	if beyond7 != baseScore+dayPartBonus {
		t.Errorf("slot beyond 7 days score = %d", beyond7)
	}
}
