package items

import (
	"context"
	"fmt"

	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/google/uuid"
)

// ImportItems stores decoded interchange records under ownerID and returns
// how many were written. Unlike CreateItem it keeps the record's UID, so a
// document exported here and imported back keeps its identities.
func (s *Service) ImportItems(ctx context.Context, ownerID int64, records []*model.CalendarItem) (int, error) {
	for i, rec := range records {
		create := rec.ItemCreate
		create.OwnerID = ownerID
		create.Source = model.SourceImport

		uid := rec.UID
		if uid == "" {
			uid = uuid.NewString()
		}

		to := create.To
		if _, err := s.itemsRepository.CreateItem(ctx, s.db, &model.CalendarItem{
			UID:        uid,
			Exceptions: map[int64]struct{}{},
			Until:      &to,
			ItemCreate: create,
		}); err != nil {
			return i, fmt.Errorf("import record %d: %w", i, err)
		}
	}

	return len(records), nil
}
