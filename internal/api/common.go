package api

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/business/availability"
	"github.com/ansokolv/social-calendar-backend/internal/model"
)

const dateTimeFormat = time.RFC3339

// dateTime marshals as RFC 3339 without the sub-second noise of time.Time.
type dateTime time.Time

func (d dateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(d).Format(dateTimeFormat))), nil
}

func (d *dateTime) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid time value %s", data)
	}

	t, err := time.Parse(dateTimeFormat, s)
	if err != nil {
		return fmt.Errorf("invalid time format: %w", err)
	}

	*d = dateTime(t)
	return nil
}

// duration marshals in Go's duration notation ("10m", "1h30m").
type duration time.Duration

func (d duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Duration(d).String())), nil
}

func (d *duration) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid duration value %s", data)
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration format: %w", err)
	}

	*d = duration(v)
	return nil
}

type userResp struct {
	ID          int64  `json:"id,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Photo       string `json:"photo,omitempty"`
}

func mapToUserResp(user *model.User) (*userResp, error) {
	return &userResp{
		ID:          user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Photo:       user.Photo,
	}, nil
}

type settingsResp struct {
	Color  string `json:"color"`
	Notify bool   `json:"notify"`
}

func mapToSettingsResp(settings *model.UserSettings) *settingsResp {
	return &settingsResp{
		Color:  "#" + settings.Color.ToHTML(),
		Notify: settings.Notify,
	}
}

type itemResp struct {
	ID            string           `json:"id"`
	Kind          model.ItemKind   `json:"kind"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	Location      string           `json:"location,omitempty"`
	AllDay        bool             `json:"all_day"`
	From          dateTime         `json:"from"`
	To            dateTime         `json:"to"`
	RepeatType    model.RepeatType `json:"repeat_type"`
	Notifications []duration       `json:"notifications,omitempty"`
	Visibility    model.Visibility `json:"visibility"`
	Completed     bool             `json:"completed"`
}

func mapToItemResp(item *model.CalendarItem) (*itemResp, error) {
	notifications, _ := mapSlice(item.Notifications, func(d time.Duration) (duration, error) {
		return duration(d), nil
	})

	return &itemResp{
		ID:            item.ID,
		Kind:          item.Kind,
		Title:         item.Title,
		Description:   item.Description,
		Location:      item.Location,
		AllDay:        item.AllDay,
		From:          dateTime(item.From),
		To:            dateTime(item.To),
		RepeatType:    item.RepeatType,
		Notifications: notifications,
		Visibility:    item.Visibility,
		Completed:     item.Completed,
	}, nil
}

type conflictResp struct {
	Conflicting bool     `json:"conflicting"`
	Titles      []string `json:"titles,omitempty"`
}

func mapToConflictResp(report *model.ConflictReport) *conflictResp {
	return &conflictResp{
		Conflicting: report.Conflicting,
		Titles:      report.Titles,
	}
}

type slotResp struct {
	From             dateTime       `json:"from"`
	To               dateTime       `json:"to"`
	Score            int            `json:"score"`
	Available        map[int64]bool `json:"available"`
	ConflictingNames []string       `json:"conflicting_names,omitempty"`
}

func mapToSlotResp(slot *model.CandidateSlot) (*slotResp, error) {
	return &slotResp{
		From:             dateTime(slot.Interval.From),
		To:               dateTime(slot.Interval.To),
		Score:            slot.Score,
		Available:        slot.Available,
		ConflictingNames: slot.ConflictingNames,
	}, nil
}

type verdictResp struct {
	AllAvailable     bool           `json:"all_available"`
	Available        map[int64]bool `json:"available"`
	ConflictingNames []string       `json:"conflicting_names,omitempty"`
}

func mapToVerdictResp(v *availability.Verdict) *verdictResp {
	return &verdictResp{
		AllAvailable:     len(v.ConflictingNames) == 0,
		Available:        v.Available,
		ConflictingNames: v.ConflictingNames,
	}
}
