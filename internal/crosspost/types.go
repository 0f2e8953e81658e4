package crosspost

import "context"

// Request is the message mirrored to every network.
type Request struct {
	Message string
}

// Poster abstracts a social network that can publish a mirrored tweet.
type Poster interface {
	Name() string
	Post(ctx context.Context, req Request) error
}
