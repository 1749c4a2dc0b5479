package model

import (
	"github.com/gerow/go-color"
)

type UserCreate struct {
	FullName    string
	Email       string
	PhoneNumber string
	Photo       string
}

type User struct {
	ID        int64
	PushToken string
	Notify    bool
	UserCreate
}

type UserSettings struct {
	UserID int64
	Color  color.RGB
	Notify bool
}

type UserSearchFilter struct {
	Query string
	Limit int
	Page  int
}
