package dtweet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envProviderURL  = "DTWEET_PROVIDER_URL"
	envMirror       = "DTWEET_MIRROR"
	envPollInterval = "DTWEET_POLL_INTERVAL"

	defaultPollInterval = 2 * time.Second
)

// Config is the runtime configuration. The contract address and ABI are
// compiled in.
type Config struct {
	// ProviderURL is the wallet provider endpoint. Empty means no provider
	// is present.
	ProviderURL string
	// Mirror lists cross-post targets.
	Mirror []string
	// PollInterval is the receipt polling period after a transaction is sent.
	PollInterval time.Duration
}

// LoadConfig reads the environment, after merging an optional .env file from
// the working directory.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		ProviderURL:  strings.TrimSpace(os.Getenv(envProviderURL)),
		PollInterval: defaultPollInterval,
	}

	if raw := strings.TrimSpace(os.Getenv(envMirror)); raw != "" {
		for _, target := range strings.Split(raw, ",") {
			if target = strings.TrimSpace(target); target != "" {
				cfg.Mirror = append(cfg.Mirror, target)
			}
		}
	}

	if raw := strings.TrimSpace(os.Getenv(envPollInterval)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", envPollInterval, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("%s must be positive, got %s", envPollInterval, d)
		}
		cfg.PollInterval = d
	}

	return cfg, nil
}
