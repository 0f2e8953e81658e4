package bluesky

import (
	"errors"
	"testing"

	"github.com/blacktop/dtweet/internal/crosspost"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv(envHandle, "dtweet.bsky.social")
	t.Setenv(envAppPassword, "")
	t.Setenv(envPDSURL, "")

	_, err := loadConfig(Config{})
	var missing crosspost.MissingEnvError
	if !errors.As(err, &missing) || len(missing.Variables) != 1 || missing.Variables[0] != envAppPassword {
		t.Fatalf("unexpected error by loadConfig: got %v, expect missing %s", err, envAppPassword)
	}

	t.Setenv(envAppPassword, "app-password")
	tests := map[string]struct {
		env, base, expected string
	}{
		"default":   {"", "", DefaultPDSURL},
		"from base": {"", "https://pds.example", "https://pds.example"},
		"env wins":  {"https://env.example", "https://pds.example", "https://env.example"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(envPDSURL, test.env)
			cfg, err := loadConfig(Config{PDSURL: test.base})
			if err != nil {
				t.Fatalf("unexpected error by loadConfig: got %s, expect <nil>", err)
			}
			if cfg.PDSURL != test.expected {
				t.Errorf("unexpected pds url: got %s, expect %s", cfg.PDSURL, test.expected)
			}
		})
	}
}
