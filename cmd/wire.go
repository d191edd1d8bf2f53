package cmd

import (
	"fmt"

	statusadapter "github.com/bnema/twitch-chat-logger/internal/adapters/render/status"
	tomlrepo "github.com/bnema/twitch-chat-logger/internal/adapters/repo/toml"
	"github.com/bnema/twitch-chat-logger/internal/application"
	"github.com/bnema/twitch-chat-logger/internal/config"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg            config.Config
	store          *tomlrepo.Repository
	service        *application.Service
	statusRenderer func(application.FleetStatus) (string, error)
	verbose        *bool
}

func wireApp(verbose *bool) (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	store, err := tomlrepo.NewRepository(cfg.AccountsPath)
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}

	return &app{
		cfg:            cfg,
		store:          store,
		service:        application.NewService(store),
		statusRenderer: statusadapter.Render,
		verbose:        verbose,
	}, nil
}

func (a *app) logger() (*zap.Logger, error) {
	return newLogger(a.cfg.LogLevel, a.verbose != nil && *a.verbose)
}
