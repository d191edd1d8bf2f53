package twitch

import (
	"errors"
	"strings"
)

var errEmptyLine = errors.New("empty irc line")

// Message is one parsed IRC line, with IRCv3 tags.
type Message struct {
	Tags    map[string]string
	Prefix  string
	Command string
	Params  []string
}

// ParseMessage parses a single line without its trailing CRLF.
func ParseMessage(line string) (Message, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Message{}, errEmptyLine
	}

	var msg Message

	if strings.HasPrefix(line, "@") {
		raw, rest, ok := strings.Cut(line[1:], " ")
		if !ok {
			return Message{}, errors.New("irc line has tags but no command")
		}
		msg.Tags = parseTags(raw)
		line = strings.TrimLeft(rest, " ")
	}

	if strings.HasPrefix(line, ":") {
		prefix, rest, ok := strings.Cut(line[1:], " ")
		if !ok {
			return Message{}, errors.New("irc line has prefix but no command")
		}
		msg.Prefix = prefix
		line = strings.TrimLeft(rest, " ")
	}

	for line != "" {
		if strings.HasPrefix(line, ":") {
			msg.Params = append(msg.Params, line[1:])
			break
		}

		param, rest, _ := strings.Cut(line, " ")
		if msg.Command == "" {
			msg.Command = strings.ToUpper(param)
		} else {
			msg.Params = append(msg.Params, param)
		}
		line = strings.TrimLeft(rest, " ")
	}

	if msg.Command == "" {
		return Message{}, errors.New("irc line has no command")
	}

	return msg, nil
}

// Nick is the nickname part of the prefix.
func (m Message) Nick() string {
	nick, _, _ := strings.Cut(m.Prefix, "!")
	if strings.Contains(nick, ".") {
		return ""
	}
	return nick
}

func (m Message) Param(i int) string {
	if i < 0 || i >= len(m.Params) {
		return ""
	}
	return m.Params[i]
}

// Trailing is the last parameter, which holds free text.
func (m Message) Trailing() string {
	if len(m.Params) == 0 {
		return ""
	}
	return m.Params[len(m.Params)-1]
}

// Channel is the first parameter without its leading '#'.
func (m Message) Channel() string {
	return strings.TrimPrefix(m.Param(0), "#")
}

func parseTags(raw string) map[string]string {
	tags := map[string]string{}
	for _, pair := range strings.Split(raw, ";") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		tags[key] = unescapeTagValue(value)
	}
	return tags
}

var tagUnescaper = strings.NewReplacer(
	`\:`, ";",
	`\s`, " ",
	`\\`, `\`,
	`\r`, "\r",
	`\n`, "\n",
)

func unescapeTagValue(value string) string {
	return tagUnescaper.Replace(value)
}

// splitLines breaks a websocket frame into IRC lines.
func splitLines(frame string) []string {
	var lines []string
	for _, line := range strings.Split(frame, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// joinCommands groups channels into comma separated commands of at most
// batch channels each.
func joinCommands(command string, channels []string, batch int) []string {
	var commands []string
	for start := 0; start < len(channels); start += batch {
		end := min(start+batch, len(channels))
		names := make([]string, 0, end-start)
		for _, channel := range channels[start:end] {
			names = append(names, "#"+channel)
		}
		commands = append(commands, command+" "+strings.Join(names, ","))
	}
	return commands
}
