package dtweet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// Post is one tweet as stored by the contract. Fields are never mutated
// locally; the list shown to the user is always the latest fetched snapshot.
type Post struct {
	Author  common.Address
	ID      uint64
	Content string
	Likes   uint64
}

// Posts is a fetched snapshot in contract order.
type Posts []Post

// Wallet hands out the account that signs outgoing transactions.
type Wallet interface {
	RequestAccount(ctx context.Context) (common.Address, error)
}

// Contract is the remote tweet store. Every method is a single remote call;
// validation of content, likes and ownership is up to the contract.
type Contract interface {
	SubmitPost(ctx context.Context, from common.Address, content string) error
	FetchPosts(ctx context.Context, account common.Address) (Posts, error)
	SubmitLike(ctx context.Context, from, author common.Address, id uint64) error
}
