package interval

import (
	"testing"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
)

func mkInterval(fromHour, toHour int) model.TimeInterval {
	day := time.Date(2022, time.March, 14, 0, 0, 0, 0, time.UTC)
	return model.TimeInterval{
		From: day.Add(time.Duration(fromHour) * time.Hour),
		To:   day.Add(time.Duration(toHour) * time.Hour),
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    model.TimeInterval
		b    model.TimeInterval
		want bool
	}{
		{"disjoint", mkInterval(9, 10), mkInterval(11, 12), false},
		{"contained", mkInterval(9, 17), mkInterval(10, 11), true},
		{"partial", mkInterval(9, 11), mkInterval(10, 12), true},
		{"identical", mkInterval(9, 10), mkInterval(9, 10), true},
		{"touching boundary", mkInterval(9, 10), mkInterval(10, 11), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestOverlapsSelf(t *testing.T) {
	a := mkInterval(9, 10)
	if !Overlaps(a, a) {
		t.Error("an interval must overlap itself")
	}
}

func TestHasConflict(t *testing.T) {
	existing := []model.TimeInterval{
		mkInterval(9, 10),
		mkInterval(13, 14),
	}

	if HasConflict(mkInterval(10, 11), existing) {
		t.Error("candidate touching a busy interval must not conflict")
	}
	if !HasConflict(mkInterval(13, 15), existing) {
		t.Error("candidate overlapping a busy interval must conflict")
	}
	if HasConflict(mkInterval(10, 11), nil) {
		t.Error("empty busy list must never conflict")
	}
}
