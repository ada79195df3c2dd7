package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string
	AdminUser    string
	AdminPass    string

	MailboxDir    string
	LogDir        string
	WorkerCommand []string
	EvictAfter    time.Duration

	ListenCommand string
	SpeakCommand  string
}

// DriverName maps the configured database type to its database/sql driver.
func (c Config) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// ParseFlags validates flags for the server binary, falling back to
// environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var workerCmd string
	var evictMin int

	fs := flag.NewFlagSet("voting-server", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Worker plumbing
	fs.StringVar(&workerCmd, "worker", "", "Voice worker command")
	fs.StringVar(&cfg.MailboxDir, "mailbox-dir", "", "Session status mailbox directory")
	fs.StringVar(&cfg.LogDir, "log-dir", "", "Worker log directory")
	fs.IntVar(&evictMin, "evict-after", 0, "Minutes before finished sessions are evicted")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin password salt (prefer env)")
	fs.StringVar(&cfg.AdminUser, "admin-user", "", "Seeded admin username")
	fs.StringVar(&cfg.AdminPass, "admin-pass", "", "Seeded admin password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 5000 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "votes.db"
	}

	if workerCmd == "" {
		workerCmd = os.Getenv("WORKER_COMMAND")
	}
	if workerCmd == "" {
		workerCmd = "./voiceworker"
	}
	cfg.WorkerCommand = strings.Fields(workerCmd)

	if cfg.MailboxDir == "" {
		cfg.MailboxDir = envOr("MAILBOX_DIR", "run")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = envOr("LOG_DIR", "logs")
	}

	if evictMin == 0 {
		if v := os.Getenv("EVICT_AFTER_MINUTES"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid EVICT_AFTER_MINUTES env variable")
			}
			evictMin = n
		}
	}
	cfg.EvictAfter = time.Duration(evictMin) * time.Minute

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.AdminUser == "" {
		cfg.AdminUser = envOr("ADMIN_USERNAME", "admin")
	}
	if cfg.AdminPass == "" {
		cfg.AdminPass = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminPass == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}

	return cfg, nil
}

// WorkerConfig is the subset of configuration the voice worker needs. The
// worker's launch contract allows only the session ID as an argument, so
// everything else arrives through the environment.
type WorkerConfig struct {
	DatabaseURL   string
	DatabaseType  string
	MailboxDir    string
	ListenCommand string
	SpeakCommand  string
}

func (c WorkerConfig) DriverName() string {
	if c.DatabaseType == "postgres" {
		return "postgres"
	}
	return "sqlite"
}

// WorkerConfigFromEnv builds the worker configuration from environment
// variables, applying the same defaults as the server.
func WorkerConfigFromEnv() (WorkerConfig, error) {
	cfg := WorkerConfig{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DatabaseType:  envOr("DATABASE_TYPE", "sqlite"),
		MailboxDir:    envOr("MAILBOX_DIR", "run"),
		ListenCommand: os.Getenv("LISTEN_COMMAND"),
		SpeakCommand:  os.Getenv("SPEAK_COMMAND"),
	}

	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return WorkerConfig{}, errors.New("database type must be sqlite or postgres")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return WorkerConfig{}, errors.New("DATABASE_URL required for postgres")
		}
		cfg.DatabaseURL = "votes.db"
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
