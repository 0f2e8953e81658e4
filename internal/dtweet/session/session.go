package session

import (
	"context"
	"sync"

	"github.com/blacktop/dtweet/internal/dtweet"
	"github.com/blacktop/dtweet/internal/logutil"
	"github.com/ethereum/go-ethereum/common"
)

// State is the connection state of a Session.
type State int

const (
	// Disconnected is the initial state. There is no way back to it once
	// connected.
	Disconnected State = iota
	// Connected means an account has been authorized.
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of everything the view renders.
type Snapshot struct {
	State   State
	Account common.Address
	Draft   string
	Posts   dtweet.Posts
}

// Session is the view model: connected account, displayed posts and the
// draft. After every successful write the post list is re-read from the
// contract and replaced wholesale.
//
// A Session is safe for concurrent use, but calls are not coordinated:
// two overlapping submits both reach the contract and the fetch that
// finishes last decides the displayed list.
type Session struct {
	wallet   dtweet.Wallet
	contract dtweet.Contract

	mu      sync.RWMutex
	state   State
	account common.Address
	draft   string
	posts   dtweet.Posts
}

// New creates a disconnected session.
func New(wallet dtweet.Wallet, contract dtweet.Contract) *Session {
	return &Session{
		wallet:   wallet,
		contract: contract,
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		State:   s.state,
		Account: s.account,
		Draft:   s.draft,
		Posts:   append(dtweet.Posts(nil), s.posts...),
	}
}

// State reports the connection state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Account returns the connected account, zero while disconnected.
func (s *Session) Account() common.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// Draft returns the unsent post text.
func (s *Session) Draft() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// SetDraft replaces the unsent post text.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// Posts returns a copy of the displayed list.
func (s *Session) Posts() dtweet.Posts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(dtweet.Posts(nil), s.posts...)
}

// Connect requests an account from the wallet. On success the session moves
// to Connected and the post list is fetched once; a fetch failure is
// returned but the session stays Connected. On failure nothing changes.
func (s *Session) Connect(ctx context.Context) error {
	account, err := s.wallet.RequestAccount(ctx)
	if err != nil {
		logutil.Errorf("wallet connection failed: %v", err)
		return err
	}

	s.mu.Lock()
	s.account = account
	s.state = Connected
	s.mu.Unlock()
	logutil.Infof("connected: account=%s", account.Hex())

	return s.Refresh(ctx)
}

// Submit sends the current draft as a new post. The draft is sent as is;
// the contract decides what content it accepts. On success the draft is
// cleared and the list refreshed; on failure the draft is kept and no
// fetch is issued.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.RLock()
	state, account, content := s.state, s.account, s.draft
	s.mu.RUnlock()

	if state != Connected {
		return dtweet.ErrNotConnected
	}

	if err := s.contract.SubmitPost(ctx, account, content); err != nil {
		logutil.Errorf("creating tweet failed: %v", err)
		return err
	}

	s.mu.Lock()
	s.draft = ""
	s.mu.Unlock()
	logutil.Debugf("tweet created: bytes=%d", len(content))

	return s.Refresh(ctx)
}

// Like likes post id of author. On success the list is refreshed; on
// failure no fetch is issued.
func (s *Session) Like(ctx context.Context, author common.Address, id uint64) error {
	s.mu.RLock()
	state, account := s.state, s.account
	s.mu.RUnlock()

	if state != Connected {
		return dtweet.ErrNotConnected
	}

	if err := s.contract.SubmitLike(ctx, account, author, id); err != nil {
		logutil.Errorf("liking tweet failed: %v", err)
		return err
	}
	logutil.Debugf("tweet liked: author=%s id=%d", author.Hex(), id)

	return s.Refresh(ctx)
}

// Refresh re-reads the connected account's posts. The displayed list is
// replaced verbatim on success and left untouched on failure.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.RLock()
	state, account := s.state, s.account
	s.mu.RUnlock()

	if state != Connected {
		return dtweet.ErrNotConnected
	}

	posts, err := s.contract.FetchPosts(ctx, account)
	if err != nil {
		logutil.Errorf("fetching tweets failed: %v", err)
		return err
	}

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()

	return nil
}
