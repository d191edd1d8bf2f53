package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/twitch-chat-logger/internal/adapters/auth"
	"github.com/bnema/twitch-chat-logger/internal/adapters/notify"
	"github.com/bnema/twitch-chat-logger/internal/adapters/sink/file"
	"github.com/bnema/twitch-chat-logger/internal/adapters/twitch"
	"github.com/bnema/twitch-chat-logger/internal/application"
	"github.com/bnema/twitch-chat-logger/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the chat logging fleet until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.cfg.RequireClient(); err != nil {
				return err
			}

			logger, err := app.logger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runFleet(ctx, app, logger)
		},
	}
}

func runFleet(ctx context.Context, app *app, logger *zap.Logger) error {
	oauthCfg := auth.OAuthConfig(auth.ClientConfig{
		ClientID:     app.cfg.Twitch.ClientID,
		ClientSecret: app.cfg.Twitch.ClientSecret,
		RedirectURL:  app.cfg.Auth.RedirectURL,
		AuthURL:      app.cfg.Twitch.AuthURL,
		TokenURL:     app.cfg.Twitch.TokenURL,
	})

	dialer := twitch.NewDialer(app.cfg.Twitch.IRCURL, oauthCfg, logger.Named("twitch"))
	sessions := application.NewSessionFactory(dialer, file.Factory(), ports.SystemClock{}, logger.Named("session"))
	reconciler := application.NewReconciler(app.store, sessions, application.ReconcilerConfig{
		InitTimeout:     app.cfg.Fleet.InitTimeout,
		ShutdownTimeout: app.cfg.Fleet.ShutdownTimeout,
		ResyncInterval:  app.cfg.Fleet.ResyncInterval,
	}, logger.Named("fleet"))

	watcher := notify.NewFileWatcher(app.store.Path(), logger.Named("notify"))
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	listener := auth.NewListener(auth.ListenerConfig{
		Addr:        app.cfg.Auth.Listen,
		OAuth:       oauthCfg,
		ValidateURL: app.cfg.Twitch.ValidateURL,
	}, reconciler.HandleGrant, logger.Named("auth"))
	if err := listener.Start(); err != nil {
		return err
	}
	logger.Info("authorize accounts at", zap.String("url", app.cfg.LoginURL()))

	hangups := make(chan os.Signal, 1)
	signal.Notify(hangups, syscall.SIGHUP)
	defer signal.Stop(hangups)
	go triggerOnSignal(ctx, hangups, reconciler.Trigger)

	runErr := reconciler.Run(ctx, watcher.Changes())

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.cfg.Fleet.ShutdownTimeout)
	defer cancel()
	teardownErr := errors.Join(runErr, listener.Shutdown(shutdownCtx))
	if teardownErr != nil {
		// Shutdown problems are reported but do not fail an interrupted run.
		logger.Warn("fleet teardown incomplete", zap.Error(teardownErr))
	}
	logger.Info("fleet stopped")

	return nil
}

// triggerOnSignal forces a reconciliation pass for every SIGHUP.
func triggerOnSignal(ctx context.Context, signals <-chan os.Signal, trigger func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-signals:
			trigger()
		}
	}
}
