package domain

import "time"

// User is the authenticated identity as served by the profile endpoint.
type User struct {
	ID        int64     `json:"id"`
	Login     string    `json:"login"`
	CreatedAt time.Time `json:"created_at"`
}
