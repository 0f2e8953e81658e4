package mastodon

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blacktop/dtweet/internal/crosspost"
	"github.com/blacktop/dtweet/internal/logutil"
	mastodonapi "github.com/mattn/go-mastodon"
)

const (
	envServer       = "DTWEET_MASTODON_SERVER"
	envAccessToken  = "DTWEET_MASTODON_ACCESS_TOKEN"
	envClientID     = "DTWEET_MASTODON_CLIENT_ID"
	envClientSecret = "DTWEET_MASTODON_CLIENT_SECRET"

	providerName   = "mastodon"
	requestTimeout = 30 * time.Second
	maxLength      = 500
)

// Config contains the settings needed to reach a Mastodon server.
type Config struct {
	Server       string
	AccessToken  string
	ClientID     string
	ClientSecret string
}

// Client mirrors tweets as toots.
type Client struct {
	client *mastodonapi.Client
}

// New constructs a Mastodon poster based on environment configuration.
func New(ctx context.Context) (crosspost.Poster, error) {
	cfg, err := loadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	mastodonClient := mastodonapi.NewClient(&mastodonapi.Config{
		Server:       cfg.Server,
		AccessToken:  cfg.AccessToken,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	})
	mastodonClient.Timeout = requestTimeout

	return &Client{client: mastodonClient}, nil
}

// Name identifies the provider.
func (c *Client) Name() string { return providerName }

// Post publishes the tweet text as a public toot.
func (c *Client) Post(ctx context.Context, req crosspost.Request) error {
	if err := crosspost.CheckLength(providerName, req.Message, maxLength); err != nil {
		return err
	}

	status, err := c.client.PostStatus(ctx, &mastodonapi.Toot{
		Status:     req.Message,
		Visibility: mastodonapi.VisibilityPublic,
	})
	if err != nil {
		return fmt.Errorf("post status: %w", err)
	}
	logutil.Debugf("toot mirrored: id=%s", status.ID)

	return nil
}

func loadConfigFromEnv() (Config, error) {
	cfg := Config{
		Server:       strings.TrimSpace(os.Getenv(envServer)),
		AccessToken:  strings.TrimSpace(os.Getenv(envAccessToken)),
		ClientID:     strings.TrimSpace(os.Getenv(envClientID)),
		ClientSecret: strings.TrimSpace(os.Getenv(envClientSecret)),
	}

	var missing []string
	if cfg.Server == "" {
		missing = append(missing, envServer)
	}
	if cfg.AccessToken == "" {
		missing = append(missing, envAccessToken)
	}

	if len(missing) > 0 {
		return Config{}, crosspost.MissingEnvError{Provider: providerName, Variables: missing}
	}

	return cfg, nil
}
