package availability

import (
	"testing"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
)

var day = time.Date(2022, time.March, 14, 0, 0, 0, 0, time.UTC)

func busy(fromHour, toHour int) model.TimeInterval {
	return model.TimeInterval{
		From: day.Add(time.Duration(fromHour) * time.Hour),
		To:   day.Add(time.Duration(toHour) * time.Hour),
	}
}

func TestCheckEmptyBusyListAlwaysAvailable(t *testing.T) {
	participants := []*model.Participant{
		{ID: 1, DisplayName: "Anna"},
	}

	v := Check(busy(9, 10), participants)

	if !v.Available[1] {
		t.Error("participant with no busy intervals must be available")
	}
	if len(v.ConflictingNames) != 0 {
		t.Errorf("unexpected conflicting names: %v", v.ConflictingNames)
	}
}

func TestCheckSingleConflictListsOneName(t *testing.T) {
	participants := []*model.Participant{
		{ID: 1, DisplayName: "Anna", BusyIntervals: []model.TimeInterval{busy(13, 14)}},
		{ID: 2, DisplayName: "Boris", BusyIntervals: []model.TimeInterval{busy(10, 11)}},
		{ID: 3, DisplayName: "Vera"},
	}

	v := Check(busy(10, 11), participants)

	if v.Available[2] {
		t.Error("Boris must be unavailable")
	}
	if !v.Available[1] || !v.Available[3] {
		t.Error("Anna and Vera must be available")
	}
	if len(v.ConflictingNames) != 1 || v.ConflictingNames[0] != "Boris" {
		t.Errorf("conflicting names = %v, want [Boris]", v.ConflictingNames)
	}
}

func TestCheckNamesKeepParticipantOrder(t *testing.T) {
	participants := []*model.Participant{
		{ID: 1, DisplayName: "Anna", BusyIntervals: []model.TimeInterval{busy(9, 12)}},
		{ID: 2, DisplayName: "Boris", BusyIntervals: []model.TimeInterval{busy(9, 12)}},
	}

	v := Check(busy(10, 11), participants)

	if len(v.ConflictingNames) != 2 || v.ConflictingNames[0] != "Anna" || v.ConflictingNames[1] != "Boris" {
		t.Errorf("conflicting names = %v, want [Anna Boris]", v.ConflictingNames)
	}
}
