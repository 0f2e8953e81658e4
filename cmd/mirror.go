/*
Copyright © 2025 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/blacktop/dtweet/internal/crosspost"
	"github.com/blacktop/dtweet/internal/crosspost/bluesky"
	"github.com/blacktop/dtweet/internal/crosspost/mastodon"
	"github.com/blacktop/dtweet/internal/crosspost/twitter"
)

var posterConstructors = map[string]func(context.Context) (crosspost.Poster, error){
	"bluesky": func(ctx context.Context) (crosspost.Poster, error) {
		return bluesky.New(ctx, bluesky.Config{PDSURL: bluesky.DefaultPDSURL})
	},
	"mastodon": mastodon.New,
	"twitter":  twitter.New,
}

// buildPosters creates a poster per mirror target. Any target that cannot be
// configured fails the whole set.
func buildPosters(ctx context.Context, targets []string) ([]crosspost.Poster, error) {
	posters := make([]crosspost.Poster, 0, len(targets))
	var errs []error
	for _, target := range targets {
		constructor, ok := posterConstructors[target]
		if !ok {
			errs = append(errs, fmt.Errorf("mirror target %q is not implemented", target))
			continue
		}
		poster, err := constructor(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", target, err))
			continue
		}
		posters = append(posters, poster)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return posters, nil
}
