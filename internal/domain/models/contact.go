package models

import "time"

// ContactMessage is a feedback-form submission. Not tied to a user.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
