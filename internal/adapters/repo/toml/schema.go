package toml

import "fmt"

const currentSchemaVersion = 1

const (
	keyVersion      = "version"
	keyLogDirectory = "log_directory"
	keyAccounts     = "accounts"
)

type fileSchema struct {
	Version      int             `toml:"version"`
	LogDirectory string          `toml:"log_directory"`
	Accounts     []accountSchema `toml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported accounts schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type accountSchema struct {
	ID           string   `toml:"id"`
	Login        string   `toml:"login"`
	AccessToken  string   `toml:"access_token"`
	RefreshToken string   `toml:"refresh_token"`
	Channels     []string `toml:"channels"`
}

// document is the decoded file plus any top-level keys this version does not
// know about, kept so a rewrite does not drop them.
type document struct {
	file  fileSchema
	extra map[string]any
}

func isKnownKey(key string) bool {
	switch key {
	case keyVersion, keyLogDirectory, keyAccounts:
		return true
	default:
		return false
	}
}
