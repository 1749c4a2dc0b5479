package items

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/teambition/rrule-go"
)

func (s *Service) GetItemByID(ctx context.Context, id int64, ts time.Time) (*model.CalendarItem, error) {
	item, err := s.itemsRepository.GetItemByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("itemsRepository.GetItemByID: %w", err)
	}

	if item.RepeatType == model.RepeatTypeNone {
		if !item.From.Equal(ts) {
			return nil, model.ErrNoRecord
		}
		return occurrence(item, item.From), nil
	}

	rOption, err := rrule.StrToROption(item.RepeatRule)
	if err != nil {
		return nil, fmt.Errorf("parse repeat rule %q: %w", item.RepeatRule, err)
	}
	rule, err := rrule.NewRRule(*rOption)
	if err != nil {
		return nil, fmt.Errorf("make rule: %w", err)
	}

	if !rule.After(ts, true).Equal(ts) {
		return nil, model.ErrNoRecord
	}

	if _, ok := item.Exceptions[ts.Unix()]; ok {
		return nil, model.ErrNoRecord
	}

	return occurrence(item, ts), nil
}

func (s *Service) GetItems(ctx context.Context, filter model.ItemsFilter) ([]*model.CalendarItem, error) {
	baseItems, err := s.itemsRepository.GetItems(ctx, s.db, filter)
	if err != nil {
		return nil, fmt.Errorf("itemsRepository.GetItems: %w", err)
	}

	var res []*model.CalendarItem

	for _, it := range baseItems {
		if it.RepeatType == model.RepeatTypeNone {
			res = append(res, occurrence(it, it.From))
			continue
		}

		rOption, err := rrule.StrToROption(it.RepeatRule)
		if err != nil {
			return nil, fmt.Errorf("parse repeat rule %q: %w", it.RepeatRule, err)
		}
		rule, err := rrule.NewRRule(*rOption)
		if err != nil {
			return nil, fmt.Errorf("make rule: %w", err)
		}

		duration := it.To.Sub(it.From)

		repeats := rule.Between(it.From, filter.To.Add(-1), true)
		for _, r := range repeats {
			if filter.To.Before(r) || r.Add(duration).Before(filter.From) {
				continue
			}

			if _, ok := it.Exceptions[r.Unix()]; ok {
				continue
			}

			res = append(res, occurrence(it, r))
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].From.Before(res[j].From)
	})

	return res, nil
}

// occurrence projects a stored item onto one concrete occurrence starting at
// from, with an occurrence-addressed id.
func occurrence(item *model.CalendarItem, from time.Time) *model.CalendarItem {
	duration := item.To.Sub(item.From)

	create := item.ItemCreate
	create.From = from
	create.To = from.Add(duration)

	return &model.CalendarItem{
		ID:         fmt.Sprintf("%v_%v", item.ID, from.Unix()),
		UID:        item.UID,
		RepeatRule: item.RepeatRule,
		Exceptions: item.Exceptions,
		Completed:  item.Completed,
		ItemCreate: create,
	}
}
