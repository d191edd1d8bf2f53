package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/twitch-chat-logger/internal/domain"
)

// resolveAccountID accepts either the Twitch user id or the login name.
func resolveAccountID(ctx context.Context, app *app, ref string) (domain.AccountID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("--account is empty: %w", domain.ErrAccountNotFound)
	}

	status, err := app.service.Status(ctx)
	if err != nil {
		return "", err
	}

	for _, account := range status.Accounts {
		if string(account.ID) == ref {
			return account.ID, nil
		}
	}
	for _, account := range status.Accounts {
		if strings.EqualFold(account.Login, ref) {
			return account.ID, nil
		}
	}

	return "", fmt.Errorf("account %q: %w", ref, domain.ErrAccountNotFound)
}
