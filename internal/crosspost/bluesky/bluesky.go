package bluesky

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/blacktop/dtweet/internal/crosspost"
	"github.com/blacktop/dtweet/internal/logutil"
	"github.com/bluesky-social/indigo/api/atproto"
	"github.com/bluesky-social/indigo/api/bsky"
	"github.com/bluesky-social/indigo/lex/util"
	"github.com/bluesky-social/indigo/xrpc"
)

const (
	envHandle      = "DTWEET_BLUESKY_HANDLE"
	envAppPassword = "DTWEET_BLUESKY_APP_PASSWORD"
	envPDSURL      = "DTWEET_BLUESKY_PDS_URL"

	providerName   = "bluesky"
	requestTimeout = 30 * time.Second
	maxLength      = 300

	// DefaultPDSURL is used when neither the caller nor the environment
	// names a PDS.
	DefaultPDSURL = "https://bsky.social"
)

// Config allows the caller to supply defaults prior to reading environment variables.
type Config struct {
	PDSURL string
}

// Client mirrors tweets as Bluesky posts.
type Client struct {
	client *xrpc.Client
}

// New logs in with an app password and returns a Bluesky poster.
func New(ctx context.Context, base Config) (crosspost.Poster, error) {
	cfg, err := loadConfig(base)
	if err != nil {
		return nil, err
	}

	userAgent := "dtweet/1"
	xrpcClient := &xrpc.Client{
		Client:    &http.Client{Timeout: requestTimeout},
		Host:      cfg.PDSURL,
		UserAgent: &userAgent,
	}

	session, err := atproto.ServerCreateSession(ctx, xrpcClient, &atproto.ServerCreateSession_Input{
		Identifier: cfg.Handle,
		Password:   cfg.AppPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	logutil.Debugf("bluesky session created: handle=%s", session.Handle)

	xrpcClient.Auth = &xrpc.AuthInfo{
		AccessJwt:  session.AccessJwt,
		RefreshJwt: session.RefreshJwt,
		Handle:     session.Handle,
		Did:        session.Did,
	}

	return &Client{client: xrpcClient}, nil
}

// Name identifies the provider.
func (c *Client) Name() string { return providerName }

// Post creates a feed post with the tweet text.
func (c *Client) Post(ctx context.Context, req crosspost.Request) error {
	if err := crosspost.CheckLength(providerName, req.Message, maxLength); err != nil {
		return err
	}

	out, err := atproto.RepoCreateRecord(ctx, c.client, &atproto.RepoCreateRecord_Input{
		Collection: "app.bsky.feed.post",
		Repo:       c.client.Auth.Did,
		Record: &util.LexiconTypeDecoder{
			Val: &bsky.FeedPost{
				CreatedAt: time.Now().UTC().Format(time.RFC3339),
				Text:      req.Message,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	logutil.Debugf("bluesky post mirrored: uri=%s", out.Uri)

	return nil
}

type providerConfig struct {
	Handle      string
	AppPassword string
	PDSURL      string
}

func loadConfig(base Config) (providerConfig, error) {
	cfg := providerConfig{
		Handle:      strings.TrimSpace(os.Getenv(envHandle)),
		AppPassword: strings.TrimSpace(os.Getenv(envAppPassword)),
		PDSURL:      strings.TrimSpace(os.Getenv(envPDSURL)),
	}

	if cfg.PDSURL == "" {
		cfg.PDSURL = strings.TrimSpace(base.PDSURL)
	}
	if cfg.PDSURL == "" {
		cfg.PDSURL = DefaultPDSURL
	}

	var missing []string
	if cfg.Handle == "" {
		missing = append(missing, envHandle)
	}
	if cfg.AppPassword == "" {
		missing = append(missing, envAppPassword)
	}

	if len(missing) > 0 {
		return providerConfig{}, crosspost.MissingEnvError{Provider: providerName, Variables: missing}
	}

	return cfg, nil
}
