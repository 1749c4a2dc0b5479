package user

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ansokolv/social-calendar-backend/internal/database"
	"github.com/ansokolv/social-calendar-backend/internal/model"
)

func (*Repository) GetUserSettings(ctx context.Context, q database.Queryable, userID int64) (*model.UserSettings, error) {
	qb := database.PSQL.
		Select("user_id", "color", "notify").
		From(database.UserSettingsTable).
		Where(sq.Eq{"user_id": userID})

	var dtos []*settingsDTO
	if err := q.Select(ctx, &dtos, qb); err != nil {
		return nil, fmt.Errorf("SQL request: %w", err)
	}

	if len(dtos) == 0 {
		return nil, model.ErrNoRecord
	}

	return mapToSettings(dtos[0])
}

func (*Repository) SetUserSettings(ctx context.Context, q database.Queryable, settings *model.UserSettings) error {
	qb := database.PSQL.
		Insert(database.UserSettingsTable).
		Columns("user_id", "color", "notify").
		Values(settings.UserID, "#"+settings.Color.ToHTML(), settings.Notify).
		Suffix("on conflict (user_id) do update set color = excluded.color, notify = excluded.notify")

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
