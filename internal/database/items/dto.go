package items

import (
	"strconv"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
)

type itemDTO struct {
	ID             int64
	UID            string `db:"uid"`
	OwnerID        int64
	Kind           int
	Title          string
	Description    string
	Location       string
	AllDay         bool
	RepeatType     int
	StartDate      time.Time
	EndDate        *time.Time
	Duration       time.Duration
	RecurrenceRule string
	Exceptions     []time.Time
	Notifications  []int64
	Completed      bool
	Visibility     int
	Source         string
}

func mapToItem(dto *itemDTO) *model.CalendarItem {
	notifications := make([]time.Duration, len(dto.Notifications))
	for i, n := range dto.Notifications {
		notifications[i] = time.Duration(n)
	}

	exceptions := make(map[int64]struct{}, len(dto.Exceptions))
	for _, e := range dto.Exceptions {
		exceptions[e.Unix()] = struct{}{}
	}

	return &model.CalendarItem{
		ID:         strconv.FormatInt(dto.ID, 10),
		UID:        dto.UID,
		RepeatRule: dto.RecurrenceRule,
		Exceptions: exceptions,
		Until:      dto.EndDate,
		Completed:  dto.Completed,
		ItemCreate: model.ItemCreate{
			OwnerID:       dto.OwnerID,
			Kind:          model.ItemKind(dto.Kind),
			Title:         dto.Title,
			Description:   dto.Description,
			Location:      dto.Location,
			AllDay:        dto.AllDay,
			From:          dto.StartDate,
			To:            dto.StartDate.Add(dto.Duration),
			RepeatType:    model.RepeatType(dto.RepeatType),
			Notifications: notifications,
			Visibility:    model.Visibility(dto.Visibility),
			Source:        dto.Source,
		},
	}
}
