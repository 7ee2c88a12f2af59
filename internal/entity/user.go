package entity

import (
	"strings"
	"time"
)

type User struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type UserLoginData struct {
	ID       string
	Username string
	Email    string
}
