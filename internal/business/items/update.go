package items

import (
	"context"
	"fmt"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
)

// UpdateItem moves or edits the whole series. It returns a conflict report
// for the new interval against the owner's other items; a reported conflict
// does not block the save, callers decide what to do with it.
func (s *Service) UpdateItem(ctx context.Context, id int64, ts time.Time, info *model.ItemUpdate) (*model.ConflictReport, error) {
	oldItem, err := s.itemsRepository.GetItemByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get old item: %w", err)
	}

	diff := info.From.Sub(ts)
	from := oldItem.From.Add(diff)
	to := from.Add(info.To.Sub(info.From))

	report, err := s.CheckConflict(ctx, oldItem.OwnerID, id, model.TimeInterval{From: from, To: to})
	if err != nil {
		return nil, err
	}

	repeatRule := oldItem.RepeatRule
	if oldItem.RepeatType != model.RepeatTypeNone && !oldItem.From.Equal(from) {
		var err error
		repeatRule, err = getRule(oldItem.RepeatType, from, nil)
		if err != nil {
			return nil, err
		}
	}

	exceptions := oldItem.Exceptions
	if diff != 0 {
		newExceptions := make(map[int64]struct{}, len(oldItem.Exceptions))
		for e := range oldItem.Exceptions {
			newExceptions[time.Unix(e, 0).Add(diff).Unix()] = struct{}{}
		}

		exceptions = newExceptions
	}

	var endDate *time.Time
	if oldItem.RepeatType == model.RepeatTypeNone {
		endDate = &to
	}

	if err := s.itemsRepository.UpdateItem(ctx, s.db, &model.CalendarItem{
		ID:         oldItem.ID,
		UID:        oldItem.UID,
		RepeatRule: repeatRule,
		Exceptions: exceptions,
		Until:      endDate,
		Completed:  oldItem.Completed,
		ItemCreate: model.ItemCreate{
			OwnerID:       oldItem.OwnerID,
			Kind:          info.Kind,
			Title:         info.Title,
			Description:   info.Description,
			Location:      info.Location,
			AllDay:        info.AllDay,
			From:          from,
			To:            to,
			RepeatType:    oldItem.RepeatType,
			Notifications: info.Notifications,
			Visibility:    info.Visibility,
			Source:        oldItem.Source,
		},
	}); err != nil {
		return nil, fmt.Errorf("itemsRepository.UpdateItem: %w", err)
	}

	return report, nil
}

// UpdateItemInstance detaches one occurrence of a repeating item into its own
// record and excludes the original occurrence from the series.
func (s *Service) UpdateItemInstance(ctx context.Context, id int64, ts time.Time, info *model.ItemUpdate) (*model.ConflictReport, error) {
	oldItem, err := s.itemsRepository.GetItemByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("get old item: %w", err)
	}

	report, err := s.CheckConflict(ctx, oldItem.OwnerID, id, model.TimeInterval{From: info.From, To: info.To})
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx")
	}
	defer tx.Rollback(ctx)

	oldItem.Exceptions[ts.Unix()] = struct{}{}
	if err := s.itemsRepository.UpdateItem(ctx, tx, oldItem); err != nil {
		return nil, fmt.Errorf("itemsRepository.UpdateItem: %w", err)
	}

	if _, err := s.itemsRepository.CreateItem(ctx, tx, &model.CalendarItem{
		UID:        oldItem.UID,
		RepeatRule: "",
		Exceptions: map[int64]struct{}{},
		Until:      &info.To,
		ItemCreate: model.ItemCreate{
			OwnerID:       oldItem.OwnerID,
			Kind:          info.Kind,
			Title:         info.Title,
			Description:   info.Description,
			Location:      info.Location,
			AllDay:        info.AllDay,
			From:          info.From,
			To:            info.To,
			RepeatType:    model.RepeatTypeNone,
			Notifications: info.Notifications,
			Visibility:    info.Visibility,
			Source:        oldItem.Source,
		},
	}); err != nil {
		return nil, fmt.Errorf("itemsRepository.CreateItem: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx")
	}

	return report, nil
}
