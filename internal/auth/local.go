package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultName is assigned when registration omits a display name.
const DefaultName = "User"

// LocalProvider implements AuthProvider against the application's own user
// table, hashing passwords with bcrypt at a fixed cost.
type LocalProvider struct {
	Users UserRecords
}

func NewLocalProvider(users UserRecords) *LocalProvider {
	return &LocalProvider{Users: users}
}

func (p *LocalProvider) Register(ctx context.Context, name, email, password string) (Identity, error) {
	if _, err := p.Users.FindByEmail(ctx, email); err == nil {
		return Identity{}, ErrDuplicateEmail
	} else if !errors.Is(err, ErrUserNotFound) {
		return Identity{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, err
	}

	if name == "" {
		name = DefaultName
	}

	user := &User{
		UserID:         uuid.NewString(),
		Email:          email,
		HashedPassword: string(hashed),
		Name:           name,
		JoinDate:       time.Now(),
	}
	if err := p.Users.Create(ctx, user); err != nil {
		return Identity{}, err
	}

	return Identity{UserID: user.UserID, Name: user.Name}, nil
}

func (p *LocalProvider) Login(ctx context.Context, email, password string) (Identity, error) {
	user, err := p.Users.FindByEmail(ctx, email)
	if err != nil {
		return Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}

	return Identity{UserID: user.UserID, Name: user.Name}, nil
}

func (p *LocalProvider) Profile(ctx context.Context, ident Identity) (Profile, error) {
	user, err := p.Users.FindByID(ctx, ident.UserID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		UserID:   user.UserID,
		Email:    user.Email,
		Name:     user.Name,
		JoinDate: user.JoinDate,
	}, nil
}

func (p *LocalProvider) DeleteAccount(ctx context.Context, ident Identity) error {
	return p.Users.Delete(ctx, ident.UserID)
}
