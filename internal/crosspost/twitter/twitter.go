package twitter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/blacktop/dtweet/internal/crosspost"
	"github.com/blacktop/dtweet/internal/logutil"
	"github.com/michimani/gotwi"
	"github.com/michimani/gotwi/tweet/managetweet"
	managetweettypes "github.com/michimani/gotwi/tweet/managetweet/types"
)

const (
	envAPIKey       = "DTWEET_TWITTER_CONSUMER_KEY"
	envAPISecret    = "DTWEET_TWITTER_CONSUMER_SECRET"
	envAccessToken  = "DTWEET_TWITTER_ACCESS_TOKEN"
	envAccessSecret = "DTWEET_TWITTER_ACCESS_TOKEN_SECRET"

	providerName = "twitter"
	maxLength    = 280
)

var httpTimeout = 30 * time.Second

// Config captures the credentials required for OAuth 1.0a user-context requests.
type Config struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// Client mirrors tweets to X (Twitter).
type Client struct {
	api *gotwi.Client
}

// New constructs a Twitter poster using gotwi and OAuth 1.0a credentials.
func New(ctx context.Context) (crosspost.Poster, error) {
	cfg, err := loadConfigFromEnv()
	if err != nil {
		return nil, err
	}

	client, err := gotwi.NewClient(&gotwi.NewClientInput{
		HTTPClient:           &http.Client{Timeout: httpTimeout},
		AuthenticationMethod: gotwi.AuthenMethodOAuth1UserContext,
		OAuthToken:           cfg.AccessToken,
		OAuthTokenSecret:     cfg.AccessSecret,
		APIKey:               cfg.APIKey,
		APIKeySecret:         cfg.APISecret,
		Debug:                os.Getenv("DTWEET_TWITTER_DEBUG") == "1" || logutil.Verbose(),
	})
	if err != nil {
		return nil, fmt.Errorf("create X client: %w", err)
	}

	if !client.IsReady() {
		return nil, fmt.Errorf("twitter client not ready")
	}

	return &Client{api: client}, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string { return providerName }

// Post publishes the tweet text to X.
func (c *Client) Post(ctx context.Context, req crosspost.Request) error {
	if err := crosspost.CheckLength(providerName, req.Message, maxLength); err != nil {
		return err
	}

	logutil.Debugf("posting tweet: chars=%d", len([]rune(req.Message)))
	if _, err := managetweet.Create(ctx, c.api, &managetweettypes.CreateInput{
		Text: gotwi.String(req.Message),
	}); err != nil {
		return fmt.Errorf("post tweet: %w", unwrapGotwiError(err))
	}

	return nil
}

func loadConfigFromEnv() (Config, error) {
	cfg := Config{
		APIKey:       strings.TrimSpace(os.Getenv(envAPIKey)),
		APISecret:    strings.TrimSpace(os.Getenv(envAPISecret)),
		AccessToken:  strings.TrimSpace(os.Getenv(envAccessToken)),
		AccessSecret: strings.TrimSpace(os.Getenv(envAccessSecret)),
	}

	var missing []string
	for env, value := range map[string]string{
		envAPIKey:       cfg.APIKey,
		envAPISecret:    cfg.APISecret,
		envAccessToken:  cfg.AccessToken,
		envAccessSecret: cfg.AccessSecret,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return Config{}, crosspost.MissingEnvError{Provider: providerName, Variables: missing}
	}

	return cfg, nil
}

func unwrapGotwiError(err error) error {
	var gwErr *gotwi.GotwiError
	if errors.As(err, &gwErr) && gwErr != nil {
		return errors.New(summarizeGotwiError(gwErr))
	}
	return err
}

func summarizeGotwiError(err *gotwi.GotwiError) string {
	parts := make([]string, 0, 4)
	if err.Title != "" {
		parts = append(parts, err.Title)
	}
	if err.Detail != "" {
		parts = append(parts, err.Detail)
	}
	for _, apiErr := range err.APIErrors {
		if apiErr.Message != "" {
			parts = append(parts, apiErr.Message)
		}
	}
	if len(parts) == 0 {
		if msg := err.Error(); msg != "" {
			parts = append(parts, msg)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "X API request failed")
	}

	return strings.Join(parts, "; ")
}
