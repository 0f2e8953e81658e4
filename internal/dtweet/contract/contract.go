package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/blacktop/dtweet/internal/dtweet"
	"github.com/blacktop/dtweet/internal/logutil"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	methodCreateTweet  = "createTweet"
	methodGetAllTweets = "getAllTweets"
	methodLikeTweet    = "likeTweet"

	rpcSendTransaction = "eth_sendTransaction"
	rpcCall            = "eth_call"
	rpcReceipt         = "eth_getTransactionReceipt"

	receiptStatusSuccessful = 1

	defaultPollInterval = 2 * time.Second
)

// Address is where the Twitter contract is deployed.
var Address = common.HexToAddress("0xdCcAdccFd693aDA73E27e5D07091d1C397c8bf26")

//go:embed twitter.abi.json
var twitterABIJSON string

var twitterABI = mustParseABI(twitterABIJSON)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("parse twitter abi: %v", err))
	}
	return parsed
}

// Caller is the JSON-RPC surface the binding needs. *rpc.Client satisfies it.
type Caller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

// Binding is a typed proxy for the deployed Twitter contract. Writes are
// signed by the provider (eth_sendTransaction), so no key material passes
// through here.
type Binding struct {
	caller       Caller
	address      common.Address
	pollInterval time.Duration
}

// Option configures a Binding.
type Option func(*Binding)

// WithPollInterval sets how often receipts are polled after a send.
func WithPollInterval(d time.Duration) Option {
	return func(b *Binding) {
		if d > 0 {
			b.pollInterval = d
		}
	}
}

// New binds the contract at Address through caller.
func New(caller Caller, opts ...Option) *Binding {
	b := &Binding{
		caller:       caller,
		address:      Address,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type callArgs struct {
	From *common.Address `json:"from,omitempty"`
	To   *common.Address `json:"to"`
	Data hexutil.Bytes   `json:"data"`
}

type receipt struct {
	TxHash      common.Hash    `json:"transactionHash"`
	BlockNumber *hexutil.Big   `json:"blockNumber"`
	Status      hexutil.Uint64 `json:"status"`
}

// tweet mirrors the Twitter.Tweet tuple; field order and names must match
// the ABI components.
type tweet struct {
	Id        *big.Int
	Author    common.Address
	Content   string
	Timestamp *big.Int
	Likes     *big.Int
}

// SubmitPost calls createTweet(content) from the given account and waits for
// the transaction to be mined.
func (b *Binding) SubmitPost(ctx context.Context, from common.Address, content string) error {
	return b.transact(ctx, from, methodCreateTweet, content)
}

// SubmitLike calls likeTweet(author, id) from the given account and waits for
// the transaction to be mined.
func (b *Binding) SubmitLike(ctx context.Context, from, author common.Address, id uint64) error {
	return b.transact(ctx, from, methodLikeTweet, author, new(big.Int).SetUint64(id))
}

// FetchPosts reads getAllTweets(account). It is a plain eth_call with no
// sender.
func (b *Binding) FetchPosts(ctx context.Context, account common.Address) (dtweet.Posts, error) {
	fail := func(err error) (dtweet.Posts, error) {
		return nil, dtweet.FetchError{Account: account, Err: err}
	}

	input, err := twitterABI.Pack(methodGetAllTweets, account)
	if err != nil {
		return fail(fmt.Errorf("pack: %w", err))
	}

	var output hexutil.Bytes
	if err := b.caller.CallContext(ctx, &output, rpcCall, callArgs{To: &b.address, Data: input}, "latest"); err != nil {
		return fail(fmt.Errorf("%s: %w", rpcCall, err))
	}
	if len(output) == 0 {
		return fail(fmt.Errorf("empty response from %s, is the contract deployed on this chain?", b.address.Hex()))
	}

	values, err := twitterABI.Unpack(methodGetAllTweets, output)
	if err != nil {
		return fail(fmt.Errorf("unpack: %w", err))
	}
	if len(values) != 1 {
		return fail(fmt.Errorf("unpack: expected 1 value, got %d", len(values)))
	}
	raw := *abi.ConvertType(values[0], new([]tweet)).(*[]tweet)

	posts := make(dtweet.Posts, 0, len(raw))
	for i, t := range raw {
		post, err := t.toPost()
		if err != nil {
			return fail(fmt.Errorf("tweet %d: %w", i, err))
		}
		posts = append(posts, post)
	}
	logutil.Debugf("posts fetched: account=%s count=%d", account.Hex(), len(posts))

	return posts, nil
}

func (t tweet) toPost() (dtweet.Post, error) {
	if t.Author == (common.Address{}) {
		return dtweet.Post{}, errors.New("missing author")
	}
	if t.Id == nil || !t.Id.IsUint64() {
		return dtweet.Post{}, fmt.Errorf("id %v out of range", t.Id)
	}
	if t.Likes == nil || !t.Likes.IsUint64() {
		return dtweet.Post{}, fmt.Errorf("likes %v out of range", t.Likes)
	}
	return dtweet.Post{
		Author:  t.Author,
		ID:      t.Id.Uint64(),
		Content: t.Content,
		Likes:   t.Likes.Uint64(),
	}, nil
}

func (b *Binding) transact(ctx context.Context, from common.Address, method string, args ...any) error {
	fail := func(err error) error {
		return dtweet.SubmissionError{Method: method, Err: err}
	}

	input, err := twitterABI.Pack(method, args...)
	if err != nil {
		return fail(fmt.Errorf("pack: %w", err))
	}

	var hash common.Hash
	if err := b.caller.CallContext(ctx, &hash, rpcSendTransaction, callArgs{From: &from, To: &b.address, Data: input}); err != nil {
		return fail(fmt.Errorf("%s: %w", rpcSendTransaction, err))
	}
	logutil.Debugf("transaction sent: method=%s tx=%s", method, hash.Hex())

	rcpt, err := b.waitMined(ctx, hash)
	if err != nil {
		return fail(fmt.Errorf("wait for %s: %w", hash.Hex(), err))
	}
	if rcpt.Status != receiptStatusSuccessful {
		return fail(fmt.Errorf("transaction %s reverted", hash.Hex()))
	}
	logutil.Debugf("transaction mined: method=%s tx=%s block=%v", method, hash.Hex(), rcpt.BlockNumber)

	return nil
}

// waitMined polls for the receipt until it appears or ctx is done. There is
// no timeout beyond the caller's context.
func (b *Binding) waitMined(ctx context.Context, hash common.Hash) (*receipt, error) {
	ticker := time.NewTicker(b.pollInterval)
	defer ticker.Stop()

	for {
		var rcpt *receipt
		if err := b.caller.CallContext(ctx, &rcpt, rpcReceipt, hash); err != nil {
			return nil, fmt.Errorf("%s: %w", rpcReceipt, err)
		}
		if rcpt != nil {
			return rcpt, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
