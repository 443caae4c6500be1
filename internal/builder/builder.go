package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	retrygo "github.com/avast/retry-go/v4"
	"github.com/futig/churn-console/internal/config"
	"github.com/futig/churn-console/internal/integration/backend"
	"github.com/futig/churn-console/internal/pkg/formatter"
	"github.com/futig/churn-console/internal/telegram/bot"
	telegramstate "github.com/futig/churn-console/internal/telegram/state"
	"github.com/futig/churn-console/internal/ui"
	"github.com/futig/churn-console/internal/ui/session"
	"github.com/futig/churn-console/internal/usecase/console"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	connector := setupBackend(cfg, logger)

	if cfg.BackendCfg.WaitOnStart {
		if err := waitForBackend(cfg, connector, logger); err != nil {
			return nil, fmt.Errorf("wait for backend: %w", err)
		}
	}

	controller := console.NewController(connector, logger)

	store := session.NewStore(cfg.SessionTTL)
	sessions := session.NewManager(store, controller, logger)
	logger.Info("Session store initialized", zap.Duration("ttl", cfg.SessionTTL))

	templates, err := ui.ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	handler := ui.NewHandler(controller, sessions, formatter.NewFactory(), templates)
	router := ui.SetupRouter(handler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (*bot.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	if cfg.TelegramCfg.BotToken == "" {
		return nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	connector := setupBackend(cfg, logger)

	if cfg.BackendCfg.WaitOnStart {
		if err := waitForBackend(cfg, connector, logger); err != nil {
			return nil, nil, fmt.Errorf("wait for backend: %w", err)
		}
	}

	controller := console.NewController(connector, logger)
	sessions := telegramstate.NewStore(cfg.SessionTTL)

	b, err := bot.New(&cfg.TelegramCfg, sessions, controller, formatter.NewFactory(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return b, logger, nil
}

func setupBackend(cfg *config.Config, logger *zap.Logger) console.BackendConnector {
	if cfg.EnableMocks {
		logger.Info("Using mock backend connector")
		return backend.NewMockConnector(logger)
	}

	logger.Info("Using real backend connector",
		zap.String("url", cfg.BackendCfg.Url),
	)
	return backend.NewConnector(cfg.BackendCfg, logger)
}

// waitForBackend polls the health endpoint until the backend answers.
// This is the only place requests are retried.
func waitForBackend(cfg *config.Config, connector console.BackendConnector, logger *zap.Logger) error {
	logger.Info("Waiting for backend to become ready",
		zap.Uint("attempts", cfg.BackendCfg.Retry.Attempts),
	)

	return retrygo.Do(
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.BackendCfg.ConnTimeout)
			defer cancel()

			_, err := connector.Health(ctx)
			return err
		},
		append(
			cfg.BackendCfg.Retry.ToRetryOptions(),
			retrygo.OnRetry(func(n uint, err error) {
				logger.Warn("backend not ready yet",
					zap.Uint("attempt", n+1),
					zap.Error(err),
				)
			}),
		)...,
	)
}
