package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendDocker = "docker"
	BackendKernel = "kernel"

	DefaultContainer  = "wg-easy"
	DefaultInterface  = "wg0"
	DefaultTimeoutSec = 120
	DefaultStateDir   = "/var/lib/wg-easy-sentinel"

	// Pushover caps titles at 250 characters; 32 runes for the label keeps
	// the glyph and direction text comfortably inside that.
	maxLabelRunes = 32
)

// Config holds the sentinel settings, read from SENTINEL_* environment
// variables with an optional .env file loaded first.
type Config struct {
	Backend   string
	Container string
	Interface string
	Timeout   time.Duration
	StateDir  string
	NamesPath string
	Label     string

	PushoverToken string
	PushoverUser  string
}

// FromEnv builds the config from the environment. A .env file in the
// working directory is loaded when present; a missing one is not an error.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Backend:       getenv("SENTINEL_BACKEND", BackendDocker),
		Container:     getenv("SENTINEL_CONTAINER", DefaultContainer),
		Interface:     getenv("SENTINEL_INTERFACE", DefaultInterface),
		StateDir:      getenv("SENTINEL_STATE_DIR", DefaultStateDir),
		NamesPath:     getenv("SENTINEL_NAMES_PATH", ""),
		Label:         getenv("SENTINEL_LABEL", ""),
		PushoverToken: getenv("SENTINEL_PUSHOVER_TOKEN", ""),
		PushoverUser:  getenv("SENTINEL_PUSHOVER_USER", ""),
	}

	raw := getenv("SENTINEL_TIMEOUT", strconv.Itoa(DefaultTimeoutSec))
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return Config{}, fmt.Errorf("SENTINEL_TIMEOUT must be a positive integer of seconds, got %q", raw)
	}
	cfg.Timeout = time.Duration(secs) * time.Second

	if runes := []rune(cfg.Label); len(runes) > maxLabelRunes {
		cfg.Label = string(runes[:maxLabelRunes])
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the cross-field requirements.
func Validate(cfg Config) error {
	switch cfg.Backend {
	case BackendDocker:
		if cfg.Container == "" {
			return fmt.Errorf("SENTINEL_CONTAINER is required for the docker backend")
		}
	case BackendKernel:
		if cfg.Interface == "" {
			return fmt.Errorf("SENTINEL_INTERFACE is required for the kernel backend")
		}
	default:
		return fmt.Errorf("SENTINEL_BACKEND must be %q or %q, got %q", BackendDocker, BackendKernel, cfg.Backend)
	}
	if (cfg.PushoverToken == "") != (cfg.PushoverUser == "") {
		return fmt.Errorf("SENTINEL_PUSHOVER_TOKEN and SENTINEL_PUSHOVER_USER must be set together")
	}
	return nil
}

// LedgerPath is the persisted ledger file location.
func (c Config) LedgerPath() string {
	return filepath.Join(c.StateDir, "ledger")
}

// LockPath is the advisory run-lock file location.
func (c Config) LockPath() string {
	return filepath.Join(c.StateDir, "sentinel.lock")
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
