package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TokenStrategy selects how auth tokens are signed.
type TokenStrategy string

const (
	TokenStrategyJWT  TokenStrategy = "jwt"
	TokenStrategyHMAC TokenStrategy = "hmac"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	TokenSecret      string
	TokenStrategy    TokenStrategy
	TokenTTL         time.Duration
	ShutdownTimeout  time.Duration
	StoreTimeout     time.Duration
	OverdueCheckSpec string
	AdminEmail       string
	AdminPassword    string
	LogLevel         slog.Level
}

const (
	defaultRunAddress       = ":8080"
	defaultTokenSecret      = "change-me-in-production"
	defaultTokenStrategy    = TokenStrategyJWT
	defaultTokenTTL         = 24 * time.Hour
	defaultShutdownTimeout  = 10 * time.Second
	defaultStoreTimeout     = 5 * time.Second
	defaultOverdueCheckSpec = "@every 10m"
	defaultEnvFile          = ".env"
)

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	lookup, err := withEnvFile(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

// withEnvFile layers values from ENV_FILE under the process environment.
// A missing file is not an error.
func withEnvFile(lookup envLookup) (envLookup, error) {
	path := getString(lookup, "ENV_FILE", defaultEnvFile)
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		TokenSecret:      getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenStrategy:    TokenStrategy(getString(lookup, "TOKEN_STRATEGY", string(defaultTokenStrategy))),
		TokenTTL:         getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		StoreTimeout:     getDuration(lookup, "STORE_TIMEOUT", defaultStoreTimeout),
		OverdueCheckSpec: getString(lookup, "OVERDUE_CHECK_SPEC", defaultOverdueCheckSpec),
		AdminEmail:       getString(lookup, "ADMIN_EMAIL", ""),
		AdminPassword:    getString(lookup, "ADMIN_PASSWORD", ""),
		LogLevel:         slog.LevelInfo,
	}

	fs := flag.NewFlagSet("ecocoleta", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		strategyStr        = string(cfg.TokenStrategy)
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		storeTimeoutStr    = cfg.StoreTimeout.String()
		logLevelStr        = getString(lookup, "LOG_LEVEL", "info")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&strategyStr, "token-strategy", strategyStr, "Token format: jwt or hmac")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&storeTimeoutStr, "store-timeout", storeTimeoutStr, "Timeout of a single store call")
	fs.StringVar(&cfg.OverdueCheckSpec, "overdue-spec", cfg.OverdueCheckSpec, "Cron spec of the overdue pickup check")
	fs.StringVar(&logLevelStr, "log-level", logLevelStr, "Minimum log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.StoreTimeout, err = time.ParseDuration(storeTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid store timeout: %w", err)
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg.TokenStrategy = TokenStrategy(strings.ToLower(strings.TrimSpace(strategyStr)))
	switch cfg.TokenStrategy {
	case TokenStrategyJWT, TokenStrategyHMAC:
	default:
		return nil, fmt.Errorf("unknown token strategy %q", strategyStr)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}

	if strings.TrimSpace(cfg.OverdueCheckSpec) == "" {
		cfg.OverdueCheckSpec = defaultOverdueCheckSpec
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("admin email and password must be provided together")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
