package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// Firebase signs in through the Identity Toolkit REST API.
type Firebase struct {
	apiKey  string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// FirebaseOption customizes a Firebase provider.
type FirebaseOption func(*Firebase)

// WithBaseURL points the provider at another Identity Toolkit endpoint.
func WithBaseURL(u string) FirebaseOption {
	return func(f *Firebase) { f.baseURL = u }
}

func WithHTTPClient(c *http.Client) FirebaseOption {
	return func(f *Firebase) { f.client = c }
}

func NewFirebase(apiKey string, opts ...FirebaseOption) *Firebase {
	f := &Firebase{
		apiKey:  apiKey,
		baseURL: defaultIdentityToolkitURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

type passwordSignInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type passwordSignInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithEmail exchanges an email and password for tokens.
func (f *Firebase) SignInWithEmail(ctx context.Context, email, password string) (*User, error) {
	if f.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(passwordSignInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-in request: %w", err)
	}

	endpoint := f.baseURL + "/accounts:signInWithPassword?key=" + url.QueryEscape(f.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign-in request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return nil, fmt.Errorf("sign-in failed with status %d", resp.StatusCode)
		}

		switch apiErr.Error.Message {
		case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL":
			return nil, ErrInvalidCredentials
		default:
			return nil, fmt.Errorf("sign-in failed: %s", apiErr.Error.Message)
		}
	}

	var out passwordSignInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}

	secs, err := strconv.Atoi(out.ExpiresIn)
	if err != nil {
		secs = 3600
	}

	return &User{
		ID:           out.LocalID,
		Email:        out.Email,
		DisplayName:  out.DisplayName,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    f.now().Add(time.Duration(secs) * time.Second),
	}, nil
}
