package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/ansokolv/social-calendar-backend/internal/database"
	"github.com/ansokolv/social-calendar-backend/internal/model"
	"go.uber.org/zap"
)

// Service materializes participants for a scheduling request: display names
// from the users repository, busy intervals from the items service (events
// only; reminders and to-dos do not block a calendar), optionally merged with
// Google FreeBusy data and cached in Redis for the duration of a scheduling
// session.
type Service struct {
	db       database.PGX
	logger   *zap.SugaredLogger
	users    usersRepository
	items    itemsService
	cache    busyCache
	freeBusy freeBusySource
}

type usersRepository interface {
	GetUsersByIDs(ctx context.Context, q database.Queryable, ids []int64) ([]*model.User, error)
}

type itemsService interface {
	GetItems(ctx context.Context, filter model.ItemsFilter) ([]*model.CalendarItem, error)
}

type busyCache interface {
	Get(ctx context.Context, userID int64, rng model.TimeInterval) ([]model.TimeInterval, error)
	Set(ctx context.Context, userID int64, rng model.TimeInterval, intervals []model.TimeInterval) error
}

// freeBusySource may be nil when the Google integration is disabled.
type freeBusySource interface {
	BusyIntervals(ctx context.Context, email string, rng model.TimeInterval) ([]model.TimeInterval, error)
}

func NewService(
	db database.PGX,
	logger *zap.SugaredLogger,
	users usersRepository,
	items itemsService,
	cache busyCache,
	freeBusy freeBusySource,
) *Service {
	return &Service{
		db:       db,
		logger:   logger,
		users:    users,
		items:    items,
		cache:    cache,
		freeBusy: freeBusy,
	}
}

// Participants builds one Participant per user id, with busy intervals
// restricted to rng. A user whose intervals cannot be fetched is treated as
// fully available rather than failing the whole request.
func (s *Service) Participants(ctx context.Context, userIDs []int64, rng model.TimeInterval) ([]*model.Participant, error) {
	users, err := s.users.GetUsersByIDs(ctx, s.db, userIDs)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	usersMap := make(map[int64]*model.User, len(users))
	for _, u := range users {
		usersMap[u.ID] = u
	}

	res := make([]*model.Participant, 0, len(userIDs))
	for _, id := range userIDs {
		u, ok := usersMap[id]
		if !ok {
			return nil, fmt.Errorf("user %v: %w", id, model.ErrNoRecord)
		}

		busy, err := s.busyIntervals(ctx, u, rng)
		if err != nil {
			s.logger.Errorw("failed to materialize busy intervals, treating as available",
				"user_id", id, "err", err)
			busy = nil
		}

		res = append(res, &model.Participant{
			ID:            u.ID,
			DisplayName:   u.FullName,
			BusyIntervals: busy,
		})
	}

	return res, nil
}

func (s *Service) busyIntervals(ctx context.Context, u *model.User, rng model.TimeInterval) ([]model.TimeInterval, error) {
	if cached, err := s.cache.Get(ctx, u.ID, rng); err == nil {
		return cached, nil
	} else if !errors.Is(err, model.ErrNoRecord) {
		s.logger.Debugw("busy cache lookup failed", "user_id", u.ID, "err", err)
	}

	items, err := s.items.GetItems(ctx, model.ItemsFilter{
		From:     rng.From,
		To:       rng.To,
		OwnerIDs: []int64{u.ID},
		Kinds:    []model.ItemKind{model.ItemKindEvent},
	})
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}

	busy := make([]model.TimeInterval, 0, len(items))
	for _, it := range items {
		busy = append(busy, model.TimeInterval{From: it.From, To: it.To})
	}

	if s.freeBusy != nil && u.Email != "" {
		external, err := s.freeBusy.BusyIntervals(ctx, u.Email, rng)
		if err != nil {
			// Unknown external availability degrades to "available".
			s.logger.Debugw("freebusy fetch failed", "user_id", u.ID, "err", err)
		} else {
			busy = append(busy, external...)
		}
	}

	if err := s.cache.Set(ctx, u.ID, rng, busy); err != nil {
		s.logger.Debugw("busy cache store failed", "user_id", u.ID, "err", err)
	}

	return busy, nil
}
