package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail     = errors.New("email already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// UserRecords is the credential-store surface LocalProvider needs. *UserStore
// satisfies it; tests substitute an in-memory fake.
type UserRecords interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) error
}

// UserStore persists user records in Postgres.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&User{}, "user_id = ?", id).Error
}

// SessionBinder is the session persistence the handlers need. *SessionStore
// satisfies it.
type SessionBinder interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteForUser(ctx context.Context, userID string) error
}

// SessionStore persists sessions alongside the application records, so server
// restarts do not invalidate active logins.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(ctx context.Context, session *Session) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *SessionStore) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	err := s.db.WithContext(ctx).First(&session, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete is idempotent; removing a session that is already gone is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Delete(&Session{}, "session_id = ?", sessionID).Error
}

func (s *SessionStore) DeleteForUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Delete(&Session{}, "user_id = ?", userID).Error
}
