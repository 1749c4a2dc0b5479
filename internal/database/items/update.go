package items

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ansokolv/social-calendar-backend/internal/database"
	"github.com/ansokolv/social-calendar-backend/internal/model"
)

func (*Repository) UpdateItem(ctx context.Context, q database.Queryable, item *model.CalendarItem) error {
	id, err := strconv.ParseInt(item.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q: %w", item.ID, err)
	}

	notifications := make([]int64, len(item.Notifications))
	for i, n := range item.Notifications {
		notifications[i] = int64(n)
	}

	exceptions := make([]time.Time, 0, len(item.Exceptions))
	for e := range item.Exceptions {
		exceptions = append(exceptions, time.Unix(e, 0))
	}

	qb := database.PSQL.
		Update(database.ItemsTable).
		SetMap(map[string]interface{}{
			"kind":            item.Kind,
			"title":           item.Title,
			"description":     item.Description,
			"location":        item.Location,
			"all_day":         item.AllDay,
			"repeat_type":     item.RepeatType,
			"start_date":      item.From,
			"end_date":        item.Until,
			"duration":        item.To.Sub(item.From),
			"recurrence_rule": item.RepeatRule,
			"exceptions":      exceptions,
			"notifications":   notifications,
			"completed":       item.Completed,
			"visibility":      item.Visibility,
		}).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}

func (*Repository) SetCompleted(ctx context.Context, q database.Queryable, id int64, completed bool) error {
	qb := database.PSQL.
		Update(database.ItemsTable).
		Set("completed", completed).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
