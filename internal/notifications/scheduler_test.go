package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
	"go.uber.org/zap"
)

type staticItems struct {
	items []*model.CalendarItem
}

func (s *staticItems) GetItems(_ context.Context, _ model.ItemsFilter) ([]*model.CalendarItem, error) {
	return s.items, nil
}

type recordingSink struct {
	alerts []*Alert
	err    error
}

func (r *recordingSink) Send(_ context.Context, alerts []*Alert) error {
	r.alerts = append(r.alerts, alerts...)
	return r.err
}

func testItem(id string, kind model.ItemKind, from time.Time, completed bool) *model.CalendarItem {
	return &model.CalendarItem{
		ID:        id,
		Completed: completed,
		ItemCreate: model.ItemCreate{
			OwnerID: 1,
			Kind:    kind,
			Title:   "test " + id,
			From:    from,
			To:      from.Add(30 * time.Minute),
		},
	}
}

func newTestScheduler(items *staticItems, sink *recordingSink) *Scheduler {
	return NewScheduler(zap.NewNop().Sugar(), items, sink)
}

func TestEvaluateReminderAlertsOnceInsideWindow(t *testing.T) {
	now := time.Date(2022, time.March, 14, 12, 0, 0, 0, time.UTC)
	reminder := testItem("5_1", model.ItemKindReminder, now.Add(9*time.Minute), false)

	sink := &recordingSink{}
	s := newTestScheduler(&staticItems{items: []*model.CalendarItem{reminder}}, sink)

	s.Evaluate(context.Background(), now)
	if len(sink.alerts) != 1 {
		t.Fatalf("got %d alerts after first evaluation, want 1", len(sink.alerts))
	}
	if sink.alerts[0].LeadTime != reminderLookahead {
		t.Errorf("lead time = %v, want %v", sink.alerts[0].LeadTime, reminderLookahead)
	}

	// One tick later, same window: no re-alert.
	s.Evaluate(context.Background(), now.Add(time.Minute))
	if len(sink.alerts) != 1 {
		t.Errorf("got %d alerts after second evaluation, want still 1", len(sink.alerts))
	}
}

func TestEvaluateLookaheadWindows(t *testing.T) {
	now := time.Date(2022, time.March, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		item  *model.CalendarItem
		fires bool
	}{
		{"event inside 10m", testItem("1_1", model.ItemKindEvent, now.Add(9*time.Minute), false), true},
		{"event outside 10m", testItem("2_1", model.ItemKindEvent, now.Add(11*time.Minute), false), false},
		{"todo inside 30m", testItem("3_1", model.ItemKindTodo, now.Add(29*time.Minute), false), true},
		{"todo outside 30m", testItem("4_1", model.ItemKindTodo, now.Add(31*time.Minute), false), false},
		{"reminder outside 10m", testItem("5_1", model.ItemKindReminder, now.Add(15*time.Minute), false), false},
		{"completed reminder inside window", testItem("6_1", model.ItemKindReminder, now.Add(5*time.Minute), true), false},
		{"completed todo inside window", testItem("7_1", model.ItemKindTodo, now.Add(5*time.Minute), true), false},
		{"already started event", testItem("8_1", model.ItemKindEvent, now.Add(-time.Minute), false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			s := newTestScheduler(&staticItems{items: []*model.CalendarItem{tt.item}}, sink)

			s.Evaluate(context.Background(), now)

			if fired := len(sink.alerts) == 1; fired != tt.fires {
				t.Errorf("fired = %v, want %v", fired, tt.fires)
			}
		})
	}
}

func TestEvaluateKeepsIDMarkedWhenSinkFails(t *testing.T) {
	now := time.Date(2022, time.March, 14, 12, 0, 0, 0, time.UTC)
	event := testItem("1_1", model.ItemKindEvent, now.Add(5*time.Minute), false)

	sink := &recordingSink{err: errors.New("fcm down")}
	s := newTestScheduler(&staticItems{items: []*model.CalendarItem{event}}, sink)

	s.Evaluate(context.Background(), now)
	s.Evaluate(context.Background(), now.Add(time.Minute))

	// The occurrence is spent on the first attempt; a sink failure does not
	// buy a retry.
	if len(sink.alerts) != 1 {
		t.Errorf("got %d alert attempts, want 1", len(sink.alerts))
	}
}

func TestReclaimDropsPastOccurrencesOnly(t *testing.T) {
	now := time.Date(2022, time.March, 14, 12, 0, 0, 0, time.UTC)
	past := testItem("1_1", model.ItemKindEvent, now.Add(5*time.Minute), false)
	future := testItem("2_1", model.ItemKindTodo, now.Add(25*time.Minute), false)

	sink := &recordingSink{}
	s := newTestScheduler(&staticItems{items: []*model.CalendarItem{past, future}}, sink)

	s.Evaluate(context.Background(), now)
	if len(sink.alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(sink.alerts))
	}

	s.Reclaim(now.Add(10 * time.Minute))

	s.mu.Lock()
	_, pastKept := s.alerted["1_1"]
	_, futureKept := s.alerted["2_1"]
	s.mu.Unlock()

	if pastKept {
		t.Error("past occurrence id must be reclaimed")
	}
	if !futureKept {
		t.Error("future occurrence id must be kept")
	}
}
