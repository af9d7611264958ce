package domain

import "time"

// Article is a user-owned document. OwnerID is set at creation and never
// changes afterwards.
type Article struct {
	ID        string
	Title     string
	Content   string
	OwnerID   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
