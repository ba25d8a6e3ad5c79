package auth

import "time"

// User is a registered account. HashedPassword never leaves the package; the
// plaintext only ever exists inside the decoded request body.
type User struct {
	UserID         string    `gorm:"primaryKey" json:"user_id"`
	Email          string    `gorm:"not null;uniqueIndex" json:"email"`
	HashedPassword string    `json:"-"`
	Name           string    `gorm:"default:'User'" json:"name"`
	JoinDate       time.Time `json:"join_date"`
}

// Session maps the opaque cookie token to an authenticated identity. Rows are
// persisted so active logins survive process restarts. A user may hold any
// number of concurrent sessions.
type Session struct {
	SessionID string `gorm:"primaryKey" json:"-"`
	UserID    string `gorm:"not null;index" json:"-"`
	UserName  string `json:"-"`
	// ProviderToken is the hosted provider's ID token; empty for local accounts.
	ProviderToken string    `json:"-"`
	ExpiresAt     time.Time `gorm:"not null" json:"-"`
}

func (User) TableName() string    { return "app_auth.users" }
func (Session) TableName() string { return "app_auth.sessions" }
