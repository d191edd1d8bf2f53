package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

const (
	TwitchAuthURL     = "https://id.twitch.tv/oauth2/authorize"
	TwitchTokenURL    = "https://id.twitch.tv/oauth2/token"
	TwitchValidateURL = "https://id.twitch.tv/oauth2/validate"

	ScopeChatRead = "chat:read"

	maxValidateResponseBytes = 1 << 20
)

var ErrTokenInvalid = errors.New("access token rejected")

type ClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
}

// OAuthConfig builds the authorization code configuration for the chat read
// scope. Empty endpoints fall back to the Twitch defaults.
func OAuthConfig(cfg ClientConfig) *oauth2.Config {
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = TwitchAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = TwitchTokenURL
	}

	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{ScopeChatRead},
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func NewState() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Identity is the account an access token belongs to.
type Identity struct {
	UserID    string   `json:"user_id"`
	Login     string   `json:"login"`
	ClientID  string   `json:"client_id"`
	Scopes    []string `json:"scopes"`
	ExpiresIn int64    `json:"expires_in"`
}

// ValidateToken resolves the identity behind accessToken.
func ValidateToken(ctx context.Context, client *http.Client, validateURL, accessToken string) (Identity, error) {
	if accessToken == "" {
		return Identity{}, errors.New("access token is required")
	}
	if validateURL == "" {
		validateURL = TwitchValidateURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, validateURL, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("create validate request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+accessToken)

	resp, err := client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("validate token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return Identity{}, ErrTokenInvalid
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Identity{}, fmt.Errorf("validate endpoint returned status %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxValidateResponseBytes)).Decode(&identity); err != nil {
		return Identity{}, fmt.Errorf("decode validate response: %w", err)
	}
	if identity.UserID == "" || identity.Login == "" {
		return Identity{}, errors.New("validate response missing user")
	}

	return identity, nil
}
