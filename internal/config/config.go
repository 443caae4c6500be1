package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/churn-console/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Session configuration
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// Backend configuration
	BackendCfg BackendConnectorConfig `envPrefix:"BACKEND_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (only required for the bot binary)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// BackendConnectorConfig configures the churn analysis backend client
type BackendConnectorConfig struct {
	HTTPClientConfig

	HealthEndpoint     string `env:"HEALTH_ENDPOINT" envDefault:"/health"`
	AskEndpoint        string `env:"ASK_ENDPOINT" envDefault:"/ask"`
	ChurnEndpoint      string `env:"CHURN_ENDPOINT" envDefault:"/analyze-churn"`
	MultiAgentEndpoint string `env:"MULTI_AGENT_ENDPOINT" envDefault:"/multi-agent-analyze"`
	EvaluationEndpoint string `env:"EVALUATION_ENDPOINT" envDefault:"/evaluation-results"`

	// MaxResponseLength caps generated answer length server-side
	MaxResponseLength int `env:"MAX_RESPONSE_LENGTH" envDefault:"2000"`

	// WaitOnStart polls the health endpoint before serving. The retry
	// budget applies to boot only; user-driven calls stay single-attempt.
	WaitOnStart bool                 `env:"WAIT_ON_START" envDefault:"false"`
	Retry       pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken        string `env:"BOT_TOKEN"`
	UpdateTimeout   int    `env:"UPDATE_TIMEOUT" envDefault:"30"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"120s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"http://localhost:8000"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.SessionTTL < time.Minute || cfg.SessionTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be between 1m and 24h, got %s", cfg.SessionTTL))
	}

	if cfg.BackendCfg.MaxResponseLength < 100 || cfg.BackendCfg.MaxResponseLength > 10000 {
		errors = append(errors, fmt.Sprintf("BACKEND_MAX_RESPONSE_LENGTH must be between 100 and 10000, got %d", cfg.BackendCfg.MaxResponseLength))
	}

	if cfg.BackendCfg.Url == "" {
		errors = append(errors, "BACKEND_SERVICE_URL must not be empty")
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
