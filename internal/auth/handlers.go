package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/parthjadhav85/MyTools-Website/internal/httputil"
)

// CookiePolicy captures the per-deployment session cookie attributes: Lax for
// the same-origin variant, SameSite=None + Secure for the cross-origin variant
// behind a TLS-terminating proxy.
type CookiePolicy struct {
	TTL         time.Duration
	CrossOrigin bool
}

func (c CookiePolicy) sameSite() http.SameSite {
	if c.CrossOrigin {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (c CookiePolicy) set(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(c.TTL.Seconds()),
		SameSite: c.sameSite(),
		Secure:   c.CrossOrigin,
	})
}

func (c CookiePolicy) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: c.sameSite(),
		Secure:   c.CrossOrigin,
	})
}

// Handler carries the injected dependencies for the auth routes.
type Handler struct {
	Provider AuthProvider
	Sessions SessionBinder
	Cookies  CookiePolicy
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if creds.Email == "" || creds.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ident, err := h.Provider.Register(r.Context(), creds.Name, creds.Email, creds.Password)
	if errors.Is(err, ErrDuplicateEmail) {
		httputil.Error(w, http.StatusBadRequest, "Email already taken")
		return
	}
	if err != nil {
		log.Printf("register: %v", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.bindSession(w, r, ident); err != nil {
		log.Printf("register: bind session: %v", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Account created!",
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httputil.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	ident, err := h.Provider.Login(r.Context(), creds.Email, creds.Password)
	switch {
	case errors.Is(err, ErrUserNotFound):
		httputil.Error(w, http.StatusBadRequest, "User not found")
		return
	case errors.Is(err, ErrInvalidCredentials):
		httputil.Error(w, http.StatusBadRequest, "Invalid password")
		return
	case err != nil:
		log.Printf("login: %v", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	if err := h.bindSession(w, r, ident); err != nil {
		log.Printf("login: bind session: %v", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged in successfully",
	})
}

// MeHandler reports session-derived identity. Anonymous callers get a 200 with
// loggedIn:false, never a 401.
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.currentSession(r)
	if err != nil {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{"loggedIn": false})
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"loggedIn": true,
		"name":     session.UserName,
	})
}

// LogoutHandler destroys the session unconditionally; logging out with no
// active session is also a success.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		if err := h.Sessions.Delete(r.Context(), cookie.Value); err != nil {
			log.Printf("logout: %v", err)
		}
	}

	h.Cookies.clear(w)
	httputil.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.currentSession(r)
	if err != nil {
		httputil.Error(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	profile, err := h.Provider.Profile(r.Context(), Identity{
		UserID: session.UserID,
		Name:   session.UserName,
		Token:  session.ProviderToken,
	})
	if errors.Is(err, ErrUserNotFound) {
		httputil.Error(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("profile: %v", err)
		httputil.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httputil.JSON(w, http.StatusOK, profile)
}

func (h *Handler) DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.currentSession(r)
	if err != nil {
		httputil.Error(w, http.StatusUnauthorized, "Not logged in")
		return
	}

	err = h.Provider.DeleteAccount(r.Context(), Identity{
		UserID: session.UserID,
		Name:   session.UserName,
		Token:  session.ProviderToken,
	})
	if err != nil {
		log.Printf("delete account: %v", err)
		httputil.Error(w, http.StatusInternalServerError, "Could not delete account")
		return
	}

	if err := h.Sessions.DeleteForUser(r.Context(), session.UserID); err != nil {
		log.Printf("delete account: destroy sessions: %v", err)
	}

	h.Cookies.clear(w)
	httputil.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// bindSession creates a server-side session for the identity and hands its
// token to the client via the session cookie.
func (h *Handler) bindSession(w http.ResponseWriter, r *http.Request, ident Identity) error {
	session := &Session{
		SessionID:     uuid.NewString(),
		UserID:        ident.UserID,
		UserName:      ident.Name,
		ProviderToken: ident.Token,
		ExpiresAt:     time.Now().Add(h.Cookies.TTL),
	}
	if err := h.Sessions.Create(r.Context(), session); err != nil {
		return err
	}

	h.Cookies.set(w, session.SessionID)
	return nil
}

// currentSession resolves the request's cookie to a stored, unexpired session.
func (h *Handler) currentSession(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		return nil, ErrSessionNotFound
	}

	session, err := h.Sessions.FindByID(r.Context(), cookie.Value)
	if err != nil {
		return nil, err
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}
