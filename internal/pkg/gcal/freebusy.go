package gcal

import (
	"context"
	"fmt"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Service queries the Google Calendar FreeBusy API for participants who keep
// their calendar in Google. It only reads busy spans; event details never
// leave Google.
type Service struct {
	calendar *calendar.Service
}

func NewService(ctx context.Context) (*Service, error) {
	svc, err := calendar.NewService(ctx, option.WithScopes(calendar.CalendarReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("init calendar service: %w", err)
	}

	return &Service{calendar: svc}, nil
}

// BusyIntervals returns the busy spans of the given calendar (addressed by
// the user's email) inside rng.
func (s *Service) BusyIntervals(ctx context.Context, email string, rng model.TimeInterval) ([]model.TimeInterval, error) {
	req := &calendar.FreeBusyRequest{
		TimeMin: rng.From.Format(time.RFC3339),
		TimeMax: rng.To.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: email}},
	}

	resp, err := s.calendar.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	cal, ok := resp.Calendars[email]
	if !ok {
		return nil, nil
	}

	var res []model.TimeInterval
	for _, b := range cal.Busy {
		from, err := time.Parse(time.RFC3339, b.Start)
		if err != nil {
			return nil, fmt.Errorf("parse busy start %q: %w", b.Start, err)
		}
		to, err := time.Parse(time.RFC3339, b.End)
		if err != nil {
			return nil, fmt.Errorf("parse busy end %q: %w", b.End, err)
		}

		res = append(res, model.TimeInterval{From: from, To: to})
	}

	return res, nil
}
