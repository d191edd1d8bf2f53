package application

import "github.com/bnema/twitch-chat-logger/internal/domain"

// AccountSummary is the token-free view of a configured account.
type AccountSummary struct {
	ID              domain.AccountID
	Login           string
	Channels        []string
	HasRefreshToken bool
}

type FleetStatus struct {
	LogDirectory string
	Accounts     []AccountSummary
}

func summarize(snapshot domain.Snapshot) FleetStatus {
	status := FleetStatus{
		LogDirectory: snapshot.LogDirectory,
		Accounts:     make([]AccountSummary, 0, len(snapshot.Accounts)),
	}
	for _, account := range snapshot.Accounts {
		status.Accounts = append(status.Accounts, AccountSummary{
			ID:              account.ID,
			Login:           account.Login,
			Channels:        append([]string(nil), account.Channels...),
			HasRefreshToken: account.Credentials.RefreshToken != "",
		})
	}

	return status
}
