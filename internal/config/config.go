package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configDir    = ".tcl"
	configName   = "config"
	configType   = "toml"
	envPrefix    = "TCL"
	accountsFile = "accounts.toml"

	KeyAccountsPath         = "accounts.path"
	KeyTwitchClientID       = "twitch.client_id"
	KeyTwitchClientSecret   = "twitch.client_secret"
	KeyTwitchIRCURL         = "twitch.irc_url"
	KeyTwitchAuthURL        = "twitch.auth_url"
	KeyTwitchTokenURL       = "twitch.token_url"
	KeyTwitchValidateURL    = "twitch.validate_url"
	KeyAuthListen           = "auth.listen"
	KeyAuthRedirectURL      = "auth.redirect_url"
	KeyFleetInitTimeout     = "fleet.init_timeout"
	KeyFleetShutdownTimeout = "fleet.shutdown_timeout"
	KeyFleetResyncInterval  = "fleet.resync_interval"
	KeyLogLevel             = "log.level"

	defaultIRCURL          = "wss://irc-ws.chat.twitch.tv:443"
	defaultAuthURL         = "https://id.twitch.tv/oauth2/authorize"
	defaultTokenURL        = "https://id.twitch.tv/oauth2/token"
	defaultValidateURL     = "https://id.twitch.tv/oauth2/validate"
	defaultAuthListen      = "127.0.0.1:8003"
	defaultAuthRedirectURL = "http://localhost:8003/auth/callback"
	defaultInitTimeout     = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

var ErrMissingClientCredentials = errors.New("twitch client id and secret are required")

type Config struct {
	AccountsPath string
	Twitch       Twitch
	Auth         Auth
	Fleet        Fleet
	LogLevel     string
}

type Twitch struct {
	ClientID     string
	ClientSecret string
	IRCURL       string
	AuthURL      string
	TokenURL     string
	ValidateURL  string
}

type Auth struct {
	Listen      string
	RedirectURL string
}

type Fleet struct {
	InitTimeout     time.Duration
	ShutdownTimeout time.Duration
	ResyncInterval  time.Duration
}

// Load reads ~/.tcl/config.toml when present and applies TCL_* environment
// overrides on top of the defaults.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(KeyAccountsPath, filepath.Join(homeDir, configDir, accountsFile))
	cfg.SetDefault(KeyTwitchClientID, "")
	cfg.SetDefault(KeyTwitchClientSecret, "")
	cfg.SetDefault(KeyTwitchIRCURL, defaultIRCURL)
	cfg.SetDefault(KeyTwitchAuthURL, defaultAuthURL)
	cfg.SetDefault(KeyTwitchTokenURL, defaultTokenURL)
	cfg.SetDefault(KeyTwitchValidateURL, defaultValidateURL)
	cfg.SetDefault(KeyAuthListen, defaultAuthListen)
	cfg.SetDefault(KeyAuthRedirectURL, defaultAuthRedirectURL)
	cfg.SetDefault(KeyFleetInitTimeout, defaultInitTimeout)
	cfg.SetDefault(KeyFleetShutdownTimeout, defaultShutdownTimeout)
	cfg.SetDefault(KeyFleetResyncInterval, time.Duration(0))
	cfg.SetDefault(KeyLogLevel, defaultLogLevel)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	loaded := Config{
		AccountsPath: expandHome(cfg.GetString(KeyAccountsPath), homeDir),
		Twitch: Twitch{
			ClientID:     cfg.GetString(KeyTwitchClientID),
			ClientSecret: cfg.GetString(KeyTwitchClientSecret),
			IRCURL:       cfg.GetString(KeyTwitchIRCURL),
			AuthURL:      cfg.GetString(KeyTwitchAuthURL),
			TokenURL:     cfg.GetString(KeyTwitchTokenURL),
			ValidateURL:  cfg.GetString(KeyTwitchValidateURL),
		},
		Auth: Auth{
			Listen:      cfg.GetString(KeyAuthListen),
			RedirectURL: cfg.GetString(KeyAuthRedirectURL),
		},
		Fleet: Fleet{
			InitTimeout:     cfg.GetDuration(KeyFleetInitTimeout),
			ShutdownTimeout: cfg.GetDuration(KeyFleetShutdownTimeout),
			ResyncInterval:  cfg.GetDuration(KeyFleetResyncInterval),
		},
		LogLevel: cfg.GetString(KeyLogLevel),
	}

	if err := loaded.validate(); err != nil {
		return Config{}, err
	}

	return loaded, nil
}

func (c Config) validate() error {
	if c.AccountsPath == "" {
		return errors.New("accounts path is empty")
	}
	if c.Fleet.InitTimeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyFleetInitTimeout)
	}
	if c.Fleet.ShutdownTimeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyFleetShutdownTimeout)
	}
	if c.Fleet.ResyncInterval < 0 {
		return fmt.Errorf("%s must not be negative", KeyFleetResyncInterval)
	}

	return nil
}

// RequireClient fails unless the OAuth client credentials are set. Only the
// daemon needs them.
func (c Config) RequireClient() error {
	if c.Twitch.ClientID == "" || c.Twitch.ClientSecret == "" {
		return ErrMissingClientCredentials
	}
	return nil
}

// LoginURL is where an operator starts authorizing an account: the
// listener's login path on the redirect host.
func (c Config) LoginURL() string {
	base, _, found := strings.Cut(c.Auth.RedirectURL, "/auth/")
	if !found {
		base = strings.TrimRight(c.Auth.RedirectURL, "/")
	}
	return base + "/auth/login"
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
