package items

import (
	"context"
	"fmt"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/database"
	"github.com/ansokolv/social-calendar-backend/internal/model"
)

func (*Repository) CreateItem(ctx context.Context, q database.Queryable, item *model.CalendarItem) (int64, error) {
	notifications := make([]int64, len(item.Notifications))
	for i, n := range item.Notifications {
		notifications[i] = int64(n)
	}

	var endDate *time.Time
	if item.RepeatType == model.RepeatTypeNone {
		endDate = &item.To
	}

	qb := database.PSQL.
		Insert(database.ItemsTable).
		Columns(
			"uid",
			"owner_id",
			"kind",
			"title",
			"description",
			"location",
			"all_day",
			"repeat_type",
			"start_date",
			"end_date",
			"duration",
			"recurrence_rule",
			"notifications",
			"completed",
			"visibility",
			"source",
		).
		Values(
			item.UID,
			item.OwnerID,
			item.Kind,
			item.Title,
			item.Description,
			item.Location,
			item.AllDay,
			item.RepeatType,
			item.From,
			endDate,
			item.To.Sub(item.From),
			item.RepeatRule,
			notifications,
			item.Completed,
			item.Visibility,
			item.Source,
		).
		Suffix("returning id")

	var id int64
	if err := q.Get(ctx, &id, qb); err != nil {
		return 0, fmt.Errorf("SQL request: %w", err)
	}

	return id, nil
}
