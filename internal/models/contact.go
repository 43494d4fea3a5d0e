package models

import "time"

type ContactSubmission struct {
	ID        string
	Name      string
	Email     string
	Service   string
	Message   string
	CreatedAt time.Time
}
