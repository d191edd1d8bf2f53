package domain

import (
	"fmt"
	"strings"
)

// NormalizeChannel lower-cases a channel name and strips the IRC '#' prefix.
func NormalizeChannel(raw string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
}

// NormalizeChannels returns the channel set in first-seen order with empty
// and repeated entries removed.
func NormalizeChannels(raw []string) []string {
	channels := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		channel := NormalizeChannel(entry)
		if channel == "" {
			continue
		}
		if _, ok := seen[channel]; ok {
			continue
		}
		seen[channel] = struct{}{}
		channels = append(channels, channel)
	}

	return channels
}

// ValidateChannel rejects names that cannot be used as a directory or an IRC
// target.
func ValidateChannel(channel string) error {
	if channel == "" {
		return fmt.Errorf("%w: empty", ErrInvalidChannel)
	}
	if strings.ContainsAny(channel, "/\\ ,:\r\n\x00") || channel == "." || channel == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}

	return nil
}

// ChannelDelta reports which channels must be joined and left to move from
// current to desired. Channels present in both sets appear in neither result.
func ChannelDelta(current, desired []string) (join []string, leave []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, channel := range current {
		currentSet[channel] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired))
	for _, channel := range desired {
		desiredSet[channel] = struct{}{}
		if _, ok := currentSet[channel]; !ok {
			join = append(join, channel)
		}
	}
	for _, channel := range current {
		if _, ok := desiredSet[channel]; !ok {
			leave = append(leave, channel)
		}
	}

	return join, leave
}
