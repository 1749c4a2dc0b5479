package items

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ansokolv/social-calendar-backend/internal/database"
)

func (*Repository) DeleteItem(ctx context.Context, q database.Queryable, id int64) error {
	qb := database.PSQL.
		Delete(database.ItemsTable).
		Where(sq.Eq{"id": id})

	if _, err := q.Exec(ctx, qb); err != nil {
		return fmt.Errorf("SQL request: %w", err)
	}

	return nil
}
