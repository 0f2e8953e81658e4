package crosspost

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/blacktop/dtweet/internal/dtweet"
	"github.com/blacktop/dtweet/internal/logutil"
	"github.com/ethereum/go-ethereum/common"
)

// Targets lists every supported mirror network.
var Targets = []string{"bluesky", "mastodon", "twitter"}

// NormalizeTargets lower-cases, de-duplicates and sorts mirror targets.
// "all" selects every network and "none" (or no value) selects nothing.
func NormalizeTargets(values []string) ([]string, error) {
	result := make([]string, 0, len(values))
	seen := map[string]struct{}{}
	for _, raw := range values {
		raw = strings.TrimSpace(strings.ToLower(raw))
		switch raw {
		case "", "none":
			continue
		case "all":
			return append([]string(nil), Targets...), nil
		}
		if !supported(raw) {
			return nil, fmt.Errorf("unsupported mirror target %q", raw)
		}
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		result = append(result, raw)
	}

	sort.Strings(result)
	return result, nil
}

func supported(target string) bool {
	for _, t := range Targets {
		if t == target {
			return true
		}
	}
	return false
}

// Contract mirrors every successfully created tweet to a set of networks.
// Mirror failures are logged and never change the outcome of the on-chain
// call.
type Contract struct {
	dtweet.Contract
	posters []Poster
}

// Wrap decorates c. With no posters c is returned unchanged.
func Wrap(c dtweet.Contract, posters ...Poster) dtweet.Contract {
	if len(posters) == 0 {
		return c
	}
	return &Contract{Contract: c, posters: posters}
}

// SubmitPost creates the tweet on-chain, then mirrors it.
func (c *Contract) SubmitPost(ctx context.Context, from common.Address, content string) error {
	if err := c.Contract.SubmitPost(ctx, from, content); err != nil {
		return err
	}
	if err := c.mirror(ctx, Request{Message: content}); err != nil {
		logutil.Warnf("mirroring tweet failed: %v", err)
	}
	return nil
}

func (c *Contract) mirror(ctx context.Context, req Request) error {
	var errs []error
	for _, poster := range c.posters {
		logutil.Debugf("mirroring to %s", poster.Name())
		if err := poster.Post(ctx, req); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", poster.Name(), err))
			continue
		}
		logutil.Infof("mirrored to %s", poster.Name())
	}
	return errors.Join(errs...)
}
