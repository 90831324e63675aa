package domain

import "time"

// Message is a single chat message. IDs are server-assigned and unique;
// the server's list order is authoritative and never re-sorted locally.
type Message struct {
	ID          int64     `json:"id"`
	AuthorLogin string    `json:"author_login"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}
