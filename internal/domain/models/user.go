package models

import "time"

// User represents a registered customer. Username and email are unique
// across all users; PassHash is a bcrypt digest and is never exposed to
// clients.
type User struct {
	ID        int64
	Username  string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}
