package domain

import "time"

// CompletionLog records one round-trip through the AI suggestion proxy.
type CompletionLog struct {
	ID        string
	UserID    string
	Prompt    string
	Response  string
	Model     string
	CreatedAt time.Time
}
