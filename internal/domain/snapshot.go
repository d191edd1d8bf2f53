package domain

import (
	"fmt"
	"strings"
)

// Snapshot is a point-in-time read of the whole configuration.
type Snapshot struct {
	LogDirectory string
	Accounts     []Account
}

// Validate fails on an empty or repeated account id and on channel names
// that cannot be joined as a single channel.
func (s Snapshot) Validate() error {
	seen := make(map[AccountID]struct{}, len(s.Accounts))
	for i, account := range s.Accounts {
		if strings.TrimSpace(string(account.ID)) == "" {
			return fmt.Errorf("%w: account %d has no id", ErrInvalidAccount, i+1)
		}
		if _, ok := seen[account.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateAccount, account.ID)
		}
		seen[account.ID] = struct{}{}

		for _, channel := range account.Channels {
			if err := ValidateChannel(channel); err != nil {
				return fmt.Errorf("account %s: %w", account.ID, err)
			}
		}
	}

	return nil
}

func (s Snapshot) Find(id AccountID) (Account, bool) {
	for _, account := range s.Accounts {
		if account.ID == id {
			return account, true
		}
	}

	return Account{}, false
}

// Desired indexes the snapshot by account id. Callers validate first.
func (s Snapshot) Desired() map[AccountID]Account {
	desired := make(map[AccountID]Account, len(s.Accounts))
	for _, account := range s.Accounts {
		desired[account.ID] = account
	}

	return desired
}
