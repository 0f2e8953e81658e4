package dtweet

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNotConnected is returned for writes and reads issued before a wallet
// account has been authorized.
var ErrNotConnected = errors.New("wallet not connected")

// ProviderUnavailableError is returned when no wallet provider can be reached.
type ProviderUnavailableError struct {
	Err error
}

func (e ProviderUnavailableError) Error() string {
	if e.Err == nil {
		return "wallet provider unavailable"
	}
	return fmt.Sprintf("wallet provider unavailable: %v", e.Err)
}

func (e ProviderUnavailableError) Unwrap() error { return e.Err }

// AuthorizationDeniedError is returned when the provider refuses to hand out
// an account.
type AuthorizationDeniedError struct {
	Err error
}

func (e AuthorizationDeniedError) Error() string {
	if e.Err == nil {
		return "account authorization denied"
	}
	return fmt.Sprintf("account authorization denied: %v", e.Err)
}

func (e AuthorizationDeniedError) Unwrap() error { return e.Err }

// SubmissionError covers every failure of a state-changing call. Transport
// errors, remote rejections and reverted transactions are not told apart.
type SubmissionError struct {
	Method string
	Err    error
}

func (e SubmissionError) Error() string {
	return fmt.Sprintf("submit %s: %v", e.Method, e.Err)
}

func (e SubmissionError) Unwrap() error { return e.Err }

// FetchError is returned when the post list for Account could not be read
// or decoded.
type FetchError struct {
	Account common.Address
	Err     error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("fetch posts of %s: %v", ShortAddress(e.Account.Hex()), e.Err)
}

func (e FetchError) Unwrap() error { return e.Err }
