package items

import (
	"context"
	"fmt"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/google/uuid"
)

func (s *Service) CreateItem(ctx context.Context, info *model.ItemCreate) (*model.CalendarItem, error) {
	repeatRule := ""
	if info.RepeatType != model.RepeatTypeNone {
		var err error
		repeatRule, err = getRule(info.RepeatType, info.From, nil)
		if err != nil {
			return nil, err
		}
	}

	var endDate *time.Time
	if info.RepeatType == model.RepeatTypeNone {
		endDate = &info.To
	}

	item := &model.CalendarItem{
		UID:        uuid.NewString(),
		RepeatRule: repeatRule,
		Exceptions: map[int64]struct{}{},
		Until:      endDate,
		ItemCreate: *info,
	}

	id, err := s.itemsRepository.CreateItem(ctx, s.db, item)
	if err != nil {
		return nil, fmt.Errorf("itemsRepository.CreateItem: %w", err)
	}

	item.ID = fmt.Sprintf("%v_%v", id, info.From.Unix())
	return item, nil
}
