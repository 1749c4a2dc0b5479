package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/config"
	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// Look-ahead windows per item kind. An item alerts once when its scheduled
// time first falls inside the window.
const (
	eventLookahead    = 10 * time.Minute
	reminderLookahead = 10 * time.Minute
	todoLookahead     = 30 * time.Minute
)

// Scheduler decides which items should alert on each tick and hands them to
// the sink exactly once per occurrence. Its alerted-id set is process-local
// and reset on restart; durable dedup across restarts is deliberately not
// attempted.
type Scheduler struct {
	logger *zap.SugaredLogger
	items  itemsService
	sink   alertSink

	mu      sync.Mutex
	alerted map[string]time.Time
}

type itemsService interface {
	GetItems(ctx context.Context, filter model.ItemsFilter) ([]*model.CalendarItem, error)
}

// Alert names the item that crossed its look-ahead window and the window
// size, for display ("in 10 minutes").
type Alert struct {
	Item     *model.CalendarItem
	LeadTime time.Duration
}

type alertSink interface {
	Send(ctx context.Context, alerts []*Alert) error
}

func NewScheduler(logger *zap.SugaredLogger, items itemsService, sink alertSink) *Scheduler {
	return &Scheduler{
		logger:  logger,
		items:   items,
		sink:    sink,
		alerted: map[string]time.Time{},
	}
}

// Run evaluates on a fixed period until ctx is done. The hourly Reclaim sweep
// is scheduled separately (see cmd wiring).
func (s *Scheduler) Run(ctx context.Context) {
	s.Evaluate(ctx, time.Now())

	ticker := time.NewTicker(config.NotificationsPeriod())
	done := make(chan bool)

	closer.Bind(func() {
		done <- true
		ticker.Stop()
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case t := <-ticker.C:
			s.Evaluate(ctx, t)
		}
	}
}

// Evaluate runs one pass of the three look-ahead rules at the given instant.
// Repeated evaluations inside the same window never re-alert an item: the id
// is recorded before the sink runs, and kept even if the sink fails —
// at-most-once wins over guaranteed delivery.
func (s *Scheduler) Evaluate(ctx context.Context, now time.Time) {
	filter := model.ItemsFilter{
		From: now.AddDate(0, 0, -1),
		To:   now.Add(todoLookahead).Add(24 * time.Hour),
	}
	items, err := s.items.GetItems(ctx, filter)
	if err != nil {
		s.logger.Errorw("failed to get items", "filter", filter, "err", err)
		return
	}

	var due []*Alert

	s.mu.Lock()
	for _, it := range items {
		lead, ok := lookahead(it)
		if !ok {
			continue
		}

		if it.From.Before(now) || !it.From.Before(now.Add(lead)) {
			continue
		}

		if _, ok := s.alerted[it.ID]; ok {
			continue
		}

		s.alerted[it.ID] = it.From
		due = append(due, &Alert{Item: it, LeadTime: lead})
	}
	s.mu.Unlock()

	if len(due) == 0 {
		return
	}

	if err := s.sink.Send(ctx, due); err != nil {
		s.logger.Errorw("failed to send alerts", "count", len(due), "err", err)
	}
}

// lookahead returns the window for the item, or false when the item can no
// longer alert (completed reminders and to-dos).
func lookahead(it *model.CalendarItem) (time.Duration, bool) {
	switch it.Kind {
	case model.ItemKindEvent:
		return eventLookahead, true
	case model.ItemKindReminder:
		if it.Completed {
			return 0, false
		}
		return reminderLookahead, true
	case model.ItemKindTodo:
		if it.Completed {
			return 0, false
		}
		return todoLookahead, true
	default:
		return 0, false
	}
}

// Reclaim drops ids whose scheduled time has passed, so the alerted set does
// not grow unbounded over a long-running process. Run on a coarse schedule.
func (s *Scheduler) Reclaim(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, scheduled := range s.alerted {
		if scheduled.Before(now) {
			delete(s.alerted, id)
		}
	}
}
