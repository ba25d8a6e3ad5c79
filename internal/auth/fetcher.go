package auth

import (
	"context"

	"github.com/parthjadhav85/MyTools-Website/internal/utils"
)

// SessionInfo adapts the session store to the middleware.SessionFetcher interface.
type SessionInfo struct {
	Sessions SessionBinder
}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	session, err := si.Sessions.FindByID(context.Background(), id)
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		SessionID:     session.SessionID,
		UserID:        session.UserID,
		UserName:      session.UserName,
		ProviderToken: session.ProviderToken,
		ExpiresAt:     session.ExpiresAt,
	}, nil
}
