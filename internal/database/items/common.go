package items

import "github.com/ansokolv/social-calendar-backend/internal/database"

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"id",
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
		"exceptions",
		"notifications",
		"completed",
		"visibility",
		"source",
	).
	From(database.ItemsTable)
