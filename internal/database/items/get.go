package items

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ansokolv/social-calendar-backend/internal/database"
	"github.com/ansokolv/social-calendar-backend/internal/model"
)

func (*Repository) GetItemByID(ctx context.Context, q database.Queryable, id int64) (*model.CalendarItem, error) {
	qb := baseQuery.
		Where(sq.Eq{"id": id})

	var dtos []*itemDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToItem(dtos[0]), nil
}

func (*Repository) GetItems(ctx context.Context, q database.Queryable, filter model.ItemsFilter) ([]*model.CalendarItem, error) {
	qb := baseQuery.
		Where(sq.GtOrEq{"start_date": filter.From}).
		Where(sq.Or{sq.Eq{"end_date": nil}, sq.Lt{"end_date": filter.To}})

	if len(filter.OwnerIDs) != 0 {
		qb = qb.Where(sq.Eq{"owner_id": filter.OwnerIDs})
	}

	if len(filter.Kinds) != 0 {
		qb = qb.Where(sq.Eq{"kind": filter.Kinds})
	}

	var dtos []*itemDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	res := make([]*model.CalendarItem, len(dtos))
	for i, d := range dtos {
		res[i] = mapToItem(d)
	}

	return res, nil
}
