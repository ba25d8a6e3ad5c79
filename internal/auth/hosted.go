package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultIdentityEndpoint is the managed identity service's REST endpoint.
const DefaultIdentityEndpoint = "https://identitytoolkit.googleapis.com/v1"

// HostedProvider implements AuthProvider against a managed identity service.
// Accounts live in the hosted project; only session rows stay local. Selected
// with AUTH_PROVIDER=hosted.
type HostedProvider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewHostedProvider(apiKey, endpoint string) *HostedProvider {
	if endpoint == "" {
		endpoint = DefaultIdentityEndpoint
	}
	return &HostedProvider{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type signUpRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	DisplayName       string `json:"displayName,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signUpResponse struct {
	LocalID     string `json:"localId"`
	IDToken     string `json:"idToken"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type lookupResponse struct {
	Users []struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		CreatedAt   string `json:"createdAt"` // unix millis as a string
	} `json:"users"`
}

type identityError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *HostedProvider) Register(ctx context.Context, name, email, password string) (Identity, error) {
	if name == "" {
		name = DefaultName
	}

	var resp signUpResponse
	err := p.post(ctx, "signUp", signUpRequest{
		Email:             email,
		Password:          password,
		DisplayName:       name,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return Identity{}, err
	}

	return Identity{UserID: resp.LocalID, Name: name, Token: resp.IDToken}, nil
}

func (p *HostedProvider) Login(ctx context.Context, email, password string) (Identity, error) {
	var resp signUpResponse
	err := p.post(ctx, "signInWithPassword", signUpRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &resp)
	if err != nil {
		return Identity{}, err
	}

	name := resp.DisplayName
	if name == "" {
		name = DefaultName
	}
	return Identity{UserID: resp.LocalID, Name: name, Token: resp.IDToken}, nil
}

func (p *HostedProvider) Profile(ctx context.Context, ident Identity) (Profile, error) {
	var resp lookupResponse
	err := p.post(ctx, "lookup", map[string]string{"idToken": ident.Token}, &resp)
	if err != nil {
		return Profile{}, err
	}
	if len(resp.Users) == 0 {
		return Profile{}, ErrUserNotFound
	}

	account := resp.Users[0]
	name := account.DisplayName
	if name == "" {
		name = DefaultName
	}

	profile := Profile{
		UserID: account.LocalID,
		Email:  account.Email,
		Name:   name,
	}
	if millis, err := strconv.ParseInt(account.CreatedAt, 10, 64); err == nil {
		profile.JoinDate = time.UnixMilli(millis)
	}
	return profile, nil
}

func (p *HostedProvider) DeleteAccount(ctx context.Context, ident Identity) error {
	return p.post(ctx, "delete", map[string]string{"idToken": ident.Token}, &struct{}{})
}

func (p *HostedProvider) post(ctx context.Context, action string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/accounts:%s?key=%s", p.endpoint, action, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr identityError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return p.mapError(apiErr.Error.Message)
		}
		return fmt.Errorf("identity service: status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// mapError translates the service's error codes onto the package sentinels so
// handlers treat both providers uniformly. Codes may carry trailing detail,
// e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : ...".
func (p *HostedProvider) mapError(code string) error {
	switch {
	case strings.HasPrefix(code, "EMAIL_EXISTS"):
		return ErrDuplicateEmail
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"):
		return ErrUserNotFound
	case strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"):
		return ErrInvalidCredentials
	case strings.HasPrefix(code, "USER_NOT_FOUND"),
		strings.HasPrefix(code, "INVALID_ID_TOKEN"):
		return ErrUserNotFound
	default:
		return fmt.Errorf("identity service: %s", code)
	}
}
