package auth

import (
	"context"
	"time"
)

// Identity is what a provider knows about an authenticated account. Token is
// provider-specific proof of authentication (the hosted provider's ID token);
// the local provider leaves it empty.
type Identity struct {
	UserID string
	Name   string
	Token  string
}

// Profile is the account view returned to the client. It never includes the
// password hash.
type Profile struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	JoinDate time.Time `json:"join_date"`
}

// AuthProvider is the capability surface the HTTP handlers talk to. Two
// implementations exist: LocalProvider keeps credentials in the application
// database, HostedProvider delegates them to a managed identity service.
// Deployment configuration picks one; sessions stay server-side either way.
type AuthProvider interface {
	Register(ctx context.Context, name, email, password string) (Identity, error)
	Login(ctx context.Context, email, password string) (Identity, error)
	Profile(ctx context.Context, ident Identity) (Profile, error)
	DeleteAccount(ctx context.Context, ident Identity) error
}
