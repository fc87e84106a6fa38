// Local login session server: restores or creates a session for the persisted
// network and exposes it over HTTP with Swagger docs at /swagger/.
// Usage: CLIENT_ID=... go run ./cmd/solana-login
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/solana-login/internal/api"
	"github.com/AlexZinkM/solana-login/internal/client"
	"github.com/AlexZinkM/solana-login/internal/config"
	"github.com/AlexZinkM/solana-login/internal/handler"
	"github.com/AlexZinkM/solana-login/internal/model"
	"github.com/AlexZinkM/solana-login/internal/network"
	"github.com/AlexZinkM/solana-login/internal/provider"
	"github.com/AlexZinkM/solana-login/internal/session"
	"github.com/AlexZinkM/solana-login/internal/settings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional
	_ = godotenv.Load(".env")

	if err := config.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := newLogger(config.GetLogLevel())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	selector := network.NewSelector(settings.NewFileStore(config.GetSettingsFilePath()), config.GetNetworks(), log.Named("network"))

	timeout := config.GetRPCTimeout()
	ctrl := session.New(session.Config{
		ClientID:    config.GetClientID(),
		RedirectURL: config.GetRedirectURL(),
		Selector:    selector,
		NewProvider: provider.NewPassphraseFactory(provider.NewSessions(), promptPassphrase),
		NewResolver: func(n model.NetworkConfig) session.AccountResolver {
			return client.NewSolanaClient(n.EndpointURL, timeout)
		},
		Logger: log.Named("session"),
	})
	defer ctrl.Close()

	// a failed start leaves the session LoggedOut, the server still comes up
	if err := ctrl.Start(ctx); err != nil {
		log.Warn("session start failed", zap.Error(err))
	}

	sessionHandler, err := handler.NewSessionHandler(ctrl, selector, config.GetExportFilePath(), config.ReadHidden, log.Named("http"))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           api.SetupRouter(sessionHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("network", string(ctrl.Snapshot().Network.ID)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func promptPassphrase(ctx context.Context, prompt string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return config.ReadHidden(prompt)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
