package domain

import "strings"

type AccountID string

// Credentials is the token pair issued for an account. The store only ever
// holds the latest pair.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

func (c Credentials) IsZero() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

type Account struct {
	ID          AccountID
	Login       string
	Credentials Credentials
	Channels    []string
}

// Grant is a freshly authorized credential pair for a new or existing account.
type Grant struct {
	ID          AccountID
	Login       string
	Credentials Credentials
}

func (g Grant) Validate() error {
	if strings.TrimSpace(string(g.ID)) == "" {
		return errGrant("account id is required")
	}
	if strings.TrimSpace(g.Login) == "" {
		return errGrant("login is required")
	}
	if g.Credentials.AccessToken == "" {
		return errGrant("access token is required")
	}

	return nil
}
