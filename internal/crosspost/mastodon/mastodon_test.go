package mastodon

import (
	"context"
	"errors"
	"testing"

	"github.com/blacktop/dtweet/internal/crosspost"
)

func TestNewRequiresServerAndToken(t *testing.T) {
	t.Setenv(envServer, "")
	t.Setenv(envAccessToken, "")

	_, err := New(context.Background())
	var missing crosspost.MissingEnvError
	if !errors.As(err, &missing) || len(missing.Variables) != 2 {
		t.Fatalf("unexpected error by New: got %v, expect MissingEnvError for 2 variables", err)
	}

	t.Setenv(envServer, "https://mastodon.example")
	t.Setenv(envAccessToken, "token")
	poster, err := New(context.Background())
	if err != nil {
		t.Fatalf("unexpected error by New: got %s, expect <nil>", err)
	}
	if poster.Name() != providerName {
		t.Errorf("unexpected name: got %s, expect %s", poster.Name(), providerName)
	}
}

func TestPostRejectsLongMessage(t *testing.T) {
	c := &Client{}
	long := make([]rune, maxLength+1)
	for i := range long {
		long[i] = 'a'
	}

	err := c.Post(context.Background(), crosspost.Request{Message: string(long)})
	var tooLong crosspost.TooLongError
	if !errors.As(err, &tooLong) {
		t.Errorf("unexpected error by (*Client).Post: got %v, expect TooLongError", err)
	}
}
