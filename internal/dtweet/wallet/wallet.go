package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blacktop/dtweet/internal/dtweet"
	"github.com/blacktop/dtweet/internal/logutil"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	methodRequestAccounts = "eth_requestAccounts"
	methodAccounts        = "eth_accounts"

	// codeMethodNotFound is the JSON-RPC 2.0 code for an unknown method.
	codeMethodNotFound = -32601
)

// Provider is a wallet reachable over JSON-RPC. It stands in for the
// browser-injected provider: it hands out accounts and signs the
// transactions sent through it.
type Provider struct {
	client *rpc.Client
	url    string
}

// Dial opens the provider at rawURL. An empty URL means no provider is
// installed.
func Dial(ctx context.Context, rawURL string) (*Provider, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, dtweet.ProviderUnavailableError{Err: errors.New("no provider configured")}
	}

	client, err := rpc.DialContext(ctx, rawURL)
	if err != nil {
		return nil, dtweet.ProviderUnavailableError{Err: err}
	}
	logutil.Debugf("wallet provider dialed: url=%s", rawURL)

	return New(client, rawURL), nil
}

// New wraps an already connected client.
func New(client *rpc.Client, rawURL string) *Provider {
	return &Provider{client: client, url: rawURL}
}

// Client exposes the underlying connection so the contract binding can send
// through the same provider.
func (p *Provider) Client() *rpc.Client { return p.client }

// URL returns the endpoint the provider was dialed with.
func (p *Provider) URL() string { return p.url }

// Close releases the connection.
func (p *Provider) Close() { p.client.Close() }

// RequestAccount asks the provider to authorize an account and returns the
// first one it reports. There is no retry.
func (p *Provider) RequestAccount(ctx context.Context) (common.Address, error) {
	accounts, err := p.accounts(ctx, methodRequestAccounts)
	if isMethodNotFound(err) {
		logutil.Debugf("%s not supported, falling back to %s", methodRequestAccounts, methodAccounts)
		accounts, err = p.accounts(ctx, methodAccounts)
	}
	if err != nil {
		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			return common.Address{}, dtweet.AuthorizationDeniedError{Err: err}
		}
		return common.Address{}, dtweet.ProviderUnavailableError{Err: err}
	}

	if len(accounts) == 0 {
		return common.Address{}, dtweet.AuthorizationDeniedError{Err: errors.New("provider returned no accounts")}
	}

	logutil.Debugf("account authorized: account=%s total=%d", accounts[0].Hex(), len(accounts))
	return accounts[0], nil
}

func (p *Provider) accounts(ctx context.Context, method string) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.client.CallContext(ctx, &accounts, method); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return accounts, nil
}

func isMethodNotFound(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeMethodNotFound
}

// Unavailable is the Wallet used when no provider could be opened at
// start-up. Every request fails with the original reason.
type Unavailable struct {
	Err error
}

// RequestAccount always fails with ProviderUnavailableError.
func (u Unavailable) RequestAccount(context.Context) (common.Address, error) {
	var unavailable dtweet.ProviderUnavailableError
	if errors.As(u.Err, &unavailable) {
		return common.Address{}, unavailable
	}
	return common.Address{}, dtweet.ProviderUnavailableError{Err: u.Err}
}
