package models

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        *string
	FullName     *string
	IsAdmin      bool
	CreatedAt    time.Time
}

type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
