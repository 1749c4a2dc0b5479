package user

import (
	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/gerow/go-color"
)

type userDTO struct {
	ID          int64
	FullName    string
	Email       string
	PhoneNumber string
	Photo       string
	PushToken   string
	Notify      bool
}

func mapToUser(dto *userDTO) *model.User {
	return &model.User{
		ID:        dto.ID,
		PushToken: dto.PushToken,
		Notify:    dto.Notify,
		UserCreate: model.UserCreate{
			FullName:    dto.FullName,
			Email:       dto.Email,
			PhoneNumber: dto.PhoneNumber,
			Photo:       dto.Photo,
		},
	}
}

type settingsDTO struct {
	UserID int64
	Color  string
	Notify bool
}

func mapToSettings(dto *settingsDTO) (*model.UserSettings, error) {
	rgb, err := color.HTMLToRGB(dto.Color)
	if err != nil {
		return nil, err
	}

	return &model.UserSettings{
		UserID: dto.UserID,
		Color:  rgb,
		Notify: dto.Notify,
	}, nil
}
