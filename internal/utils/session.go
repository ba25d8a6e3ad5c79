package utils

import "time"

// SessionData is the read view of a stored session handed to middleware and
// handlers. It never carries the password hash or the raw session row.
type SessionData struct {
	SessionID     string
	UserID        string
	UserName      string
	ProviderToken string
	ExpiresAt     time.Time
}
