package notifications

import (
	"context"
	"fmt"

	"github.com/ansokolv/social-calendar-backend/internal/database"
	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/fcm"
	"go.uber.org/zap"
)

// PushSink delivers alerts to item owners through FCM. Owners without a push
// token or with notifications switched off are skipped; the scheduler has
// already spent the occurrence either way.
type PushSink struct {
	db     database.PGX
	logger *zap.SugaredLogger
	users  usersRepository
	fcm    fcmService
}

type usersRepository interface {
	GetUsersByIDs(ctx context.Context, q database.Queryable, ids []int64) ([]*model.User, error)
}

type fcmService interface {
	SendMessageBatch(ctx context.Context, ms []*fcm.Message) error
}

func NewPushSink(db database.PGX, logger *zap.SugaredLogger, users usersRepository, fcm fcmService) *PushSink {
	return &PushSink{
		db:     db,
		logger: logger,
		users:  users,
		fcm:    fcm,
	}
}

func (p *PushSink) Send(ctx context.Context, alerts []*Alert) error {
	var ownerIDs []int64
	seen := make(map[int64]struct{})
	for _, a := range alerts {
		if _, ok := seen[a.Item.OwnerID]; !ok {
			ownerIDs = append(ownerIDs, a.Item.OwnerID)
			seen[a.Item.OwnerID] = struct{}{}
		}
	}

	users, err := p.users.GetUsersByIDs(ctx, p.db, ownerIDs)
	if err != nil {
		return fmt.Errorf("get users: %w", err)
	}

	usersMap := make(map[int64]*model.User, len(users))
	for _, u := range users {
		usersMap[u.ID] = u
	}

	var messages []*fcm.Message
	for _, a := range alerts {
		owner, ok := usersMap[a.Item.OwnerID]
		if !ok {
			p.logger.Errorw("alert owner not found", "item", a.Item.ID, "owner", a.Item.OwnerID)
			continue
		}
		if !owner.Notify || owner.PushToken == "" {
			continue
		}

		messages = append(messages, &fcm.Message{
			Token: owner.PushToken,
			Data: map[string]string{
				"item_id":      a.Item.ID,
				"item_kind":    fmt.Sprintf("%v", a.Item.Kind),
				"item_title":   a.Item.Title,
				"lead_minutes": fmt.Sprintf("%v", int(a.LeadTime.Minutes())),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.fcm.SendMessageBatch(ctx, messages); err != nil {
		return fmt.Errorf("send alerts: %w", err)
	}

	return nil
}
