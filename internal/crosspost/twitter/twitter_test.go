package twitter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/blacktop/dtweet/internal/crosspost"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv(envAPIKey, "key")
	t.Setenv(envAPISecret, "")
	t.Setenv(envAccessToken, "token")
	t.Setenv(envAccessSecret, "")

	_, err := loadConfigFromEnv()
	var missing crosspost.MissingEnvError
	if !errors.As(err, &missing) {
		t.Fatalf("unexpected error by loadConfigFromEnv: got %v, expect MissingEnvError", err)
	}
	expected := []string{envAccessSecret, envAPISecret}
	if !reflect.DeepEqual(missing.Variables, expected) {
		t.Errorf("unexpected missing variables: got %v, expect %v", missing.Variables, expected)
	}

	t.Setenv(envAPISecret, "secret")
	t.Setenv(envAccessSecret, "token-secret")
	cfg, err := loadConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error by loadConfigFromEnv: got %s, expect <nil>", err)
	}
	if cfg.APIKey != "key" || cfg.AccessSecret != "token-secret" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
