package shell

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blacktop/dtweet/internal/dtweet"
	"github.com/blacktop/dtweet/internal/dtweet/session"
	"github.com/blacktop/dtweet/internal/dtweet/view"
	"github.com/ethereum/go-ethereum/common"
)

var alice = common.HexToAddress("0x1234567890abcdef1234567890abcdef12345678")

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type step struct {
	line string
	// wait holds the next line back until the output contains it.
	wait string
}

type script struct {
	t     *testing.T
	out   *syncBuffer
	steps []step
	i     int
}

func (s *script) ReadLine() (string, error) {
	if s.i > 0 {
		if want := s.steps[s.i-1].wait; want != "" {
			s.waitFor(want)
		}
	}
	if s.i >= len(s.steps) {
		return "", io.EOF
	}
	s.i++
	return s.steps[s.i-1].line, nil
}

func (s *script) waitFor(want string) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(s.out.String(), want) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	s.t.Errorf("timed out waiting for %q in output:\n%s", want, s.out.String())
}

type mockWallet struct {
	account common.Address
	err     error
}

func (w *mockWallet) RequestAccount(context.Context) (common.Address, error) {
	return w.account, w.err
}

type mockContract struct {
	mu    sync.Mutex
	posts dtweet.Posts
}

func (c *mockContract) SubmitPost(_ context.Context, from common.Address, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = append(c.posts, dtweet.Post{Author: from, ID: uint64(len(c.posts)), Content: content})
	return nil
}

func (c *mockContract) FetchPosts(context.Context, common.Address) (dtweet.Posts, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(dtweet.Posts{}, c.posts...), nil
}

func (c *mockContract) SubmitLike(_ context.Context, _, _ common.Address, id uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts[id].Likes++
	return nil
}

func run(t *testing.T, wallet dtweet.Wallet, contract dtweet.Contract, steps ...step) (*session.Session, string) {
	t.Helper()
	out := &syncBuffer{}
	sess := session.New(wallet, contract)
	sh := New(sess, view.NewPrinter(false), &script{t: t, out: out, steps: steps}, out)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sh.Run(ctx); err != nil {
		t.Fatalf("unexpected error by (*Shell).Run: got %s, expect <nil>", err)
	}
	return sess, out.String()
}

func TestNoProvider(t *testing.T) {
	sess, out := run(t, &mockWallet{err: dtweet.ProviderUnavailableError{}}, &mockContract{},
		step{line: "connect", wait: "connect failed"},
	)

	if !strings.Contains(out, "connect failed: wallet provider unavailable") {
		t.Errorf("failure not reported:\n%s", out)
	}
	if sess.State() != session.Disconnected {
		t.Errorf("unexpected state: got %s, expect %s", sess.State(), session.Disconnected)
	}
	if strings.Contains(out, "[tweet]") {
		t.Errorf("composition form rendered while disconnected:\n%s", out)
	}
}

func TestConnectEmptyList(t *testing.T) {
	sess, out := run(t, &mockWallet{account: alice}, &mockContract{},
		step{line: "connect", wait: "Connected: 0x1234...5678"},
	)

	if sess.State() != session.Connected || sess.Account() != alice {
		t.Errorf("unexpected session: state %s account %s", sess.State(), sess.Account().Hex())
	}
	if !strings.Contains(out, "[tweet] What's happening?") {
		t.Errorf("composition form missing:\n%s", out)
	}
	if strings.Contains(out, "♥") {
		t.Errorf("unexpected posts rendered:\n%s", out)
	}
}

func TestTweetAndLike(t *testing.T) {
	contract := &mockContract{}
	sess, out := run(t, &mockWallet{account: alice}, contract,
		step{line: "connect", wait: "Connected: 0x1234...5678"},
		step{line: "draft hello", wait: "draft: hello"},
		step{line: "tweet", wait: "[like 0] ♥ 0"},
		step{line: "like 0", wait: "[like 0] ♥ 1"},
		step{line: "like 5", wait: "no post #5"},
		step{line: "bogus", wait: "unknown command"},
		step{line: "quit"},
		step{line: "never read"},
	)

	if sess.Draft() != "" {
		t.Errorf("draft not cleared: %q", sess.Draft())
	}
	posts := sess.Posts()
	if len(posts) != 1 || posts[0].Content != "hello" || posts[0].Likes != 1 {
		t.Errorf("unexpected posts: %+v", posts)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("post not rendered:\n%s", out)
	}
}

func TestNotConnected(t *testing.T) {
	_, out := run(t, &mockWallet{account: alice}, &mockContract{},
		step{line: "tweet hi", wait: "tweet failed"},
	)
	if !strings.Contains(out, dtweet.ErrNotConnected.Error()) {
		t.Errorf("missing not connected error:\n%s", out)
	}
}

func TestNewLineReader(t *testing.T) {
	r := NewLineReader(strings.NewReader("connect\nlike 1\n"))
	for _, expected := range []string{"connect", "like 1"} {
		line, err := r.ReadLine()
		if err != nil || line != expected {
			t.Fatalf("unexpected line: got %q (%v), expect %q", line, err, expected)
		}
	}
	if _, err := r.ReadLine(); err != io.EOF {
		t.Errorf("unexpected error at end: got %v, expect io.EOF", err)
	}
}
