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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/blacktop/dtweet/internal/dtweet"
	"github.com/ethereum/go-ethereum/common"
)

func TestParseLikeArgs(t *testing.T) {
	tests := map[string]struct {
		args    []string
		author  common.Address
		id      uint64
		wantErr bool
	}{
		"valid": {
			args:   []string{"0x1234567890abcdef1234567890abcdef12345678", "3"},
			author: common.HexToAddress("0x1234567890abcdef1234567890abcdef12345678"),
			id:     3,
		},
		"bad address": {args: []string{"0x1234", "3"}, wantErr: true},
		"negative id": {args: []string{"0x1234567890abcdef1234567890abcdef12345678", "-1"}, wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			author, id, err := parseLikeArgs(test.args)
			if test.wantErr {
				if err == nil {
					t.Fatal("expected error by parseLikeArgs")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error by parseLikeArgs: got %s, expect <nil>", err)
			}
			if author != test.author || id != test.id {
				t.Errorf("unexpected result: got (%s, %d), expect (%s, %d)", author.Hex(), id, test.author.Hex(), test.id)
			}
		})
	}
}

func TestBuildPostersWithoutTargets(t *testing.T) {
	posters, err := buildPosters(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error by buildPosters: got %s, expect <nil>", err)
	}
	if len(posters) != 0 {
		t.Errorf("unexpected posters: %v", posters)
	}

	if _, err := buildPosters(context.Background(), []string{"friendster"}); err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestListWithoutProvider(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DTWEET_PROVIDER_URL", "")
	t.Setenv("DTWEET_MIRROR", "")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list", "--provider", ""})

	err := cmd.ExecuteContext(context.Background())
	var unavailable dtweet.ProviderUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("unexpected error by list: got %v, expect ProviderUnavailableError", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be rendered without a connection, got:\n%s", out.String())
	}
}

func TestShellWithoutProvider(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DTWEET_PROVIDER_URL", "")

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("connect\n"))
	cmd.SetArgs([]string{"--mirror", "none"})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("unexpected error by shell: got %s, expect <nil>", err)
	}
	if !strings.Contains(out.String(), "connect failed: wallet provider unavailable") {
		t.Errorf("missing failure report:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Connected:") {
		t.Errorf("unexpected connected view:\n%s", out.String())
	}
}
