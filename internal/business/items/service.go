package items

import (
	"context"

	"github.com/ansokolv/social-calendar-backend/internal/database"
	"github.com/ansokolv/social-calendar-backend/internal/model"
)

type Service struct {
	db              database.PGX
	itemsRepository itemsRepository
}

type itemsRepository interface {
	CreateItem(ctx context.Context, q database.Queryable, item *model.CalendarItem) (int64, error)
	GetItemByID(ctx context.Context, q database.Queryable, id int64) (*model.CalendarItem, error)
	GetItems(ctx context.Context, q database.Queryable, filter model.ItemsFilter) ([]*model.CalendarItem, error)
	UpdateItem(ctx context.Context, q database.Queryable, item *model.CalendarItem) error
	SetCompleted(ctx context.Context, q database.Queryable, id int64, completed bool) error
	DeleteItem(ctx context.Context, q database.Queryable, id int64) error
}

func NewService(db database.PGX, repo itemsRepository) *Service {
	return &Service{
		db:              db,
		itemsRepository: repo,
	}
}
