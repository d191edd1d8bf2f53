package status

import (
	"fmt"
	"strings"

	"github.com/bnema/twitch-chat-logger/internal/application"
	"github.com/charmbracelet/lipgloss"
)

func renderView(status application.FleetStatus, s styles) string {
	lines := []string{
		s.title.Render("Twitch Chat Logger"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(status.Accounts))),
		s.header.Render("log directory: " + logDirectoryLabel(status.LogDirectory)),
	}

	if len(status.Accounts) == 0 {
		lines = append(lines, s.empty.Render("No accounts configured. Authorize one through the auth listener."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, account := range status.Accounts {
		lines = append(lines, s.section.Render(renderAccount(account, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(account application.AccountSummary, s styles) string {
	title := s.account.Render(fmt.Sprintf("%s (%s)", account.Login, account.ID))
	if !account.HasRefreshToken {
		title += " " + s.warning.Render("[no refresh token]")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		channelsLine(account.Channels, s),
	)
}

func channelsLine(channels []string, s styles) string {
	label := s.detail.Render(fmt.Sprintf("channels (%d):", len(channels)))
	if len(channels) == 0 {
		return label + " " + s.empty.Render("none")
	}

	names := make([]string, 0, len(channels))
	for _, channel := range channels {
		names = append(names, "#"+channel)
	}

	return label + " " + s.channel.Render(strings.Join(names, ", "))
}

func logDirectoryLabel(dir string) string {
	if dir == "" {
		return "(working directory)"
	}
	return dir
}
