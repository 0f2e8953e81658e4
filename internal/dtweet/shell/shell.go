package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blacktop/dtweet/internal/dtweet/session"
	"github.com/blacktop/dtweet/internal/dtweet/view"
	"github.com/blacktop/dtweet/internal/logutil"
)

const helpText = `commands:
  connect         connect the wallet
  draft <text>    replace the draft
  tweet [text]    send the draft (or text)
  like <n>        like post #n
  refresh         re-read the post list
  show            redraw
  help            this text
  quit            leave`

// LineReader yields one input line at a time. *term.Terminal satisfies it.
type LineReader interface {
	ReadLine() (string, error)
}

type scanner struct {
	s *bufio.Scanner
}

// NewLineReader reads lines from a non-terminal input such as a pipe.
func NewLineReader(r io.Reader) LineReader {
	return &scanner{s: bufio.NewScanner(r)}
}

func (s *scanner) ReadLine() (string, error) {
	if s.s.Scan() {
		return s.s.Text(), nil
	}
	if err := s.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Shell is the interactive surface. A single loop owns the output; remote
// operations run in their own goroutines and report back to the loop, so
// the prompt keeps accepting input while a transaction is being mined.
type Shell struct {
	session *session.Session
	printer view.Printer
	in      LineReader
	out     io.Writer
}

// New creates a shell over sess.
func New(sess *session.Session, printer view.Printer, in LineReader, out io.Writer) *Shell {
	return &Shell{
		session: sess,
		printer: printer,
		in:      in,
		out:     out,
	}
}

type completion struct {
	name string
	err  error
}

// Run processes input until it ends or quit is entered, then waits for
// operations still in flight.
func (sh *Shell) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for {
			line, err := sh.in.ReadLine()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	done := make(chan completion)
	pending := 0
	input := lines

	sh.render()
	for {
		select {
		case line, ok := <-input:
			if !ok {
				input = nil
				break
			}
			async, quit := sh.dispatch(line)
			if quit {
				input = nil
				break
			}
			if async != nil {
				pending++
				go func(c command) {
					err := c.run(ctx)
					select {
					case done <- completion{name: c.name, err: err}:
					case <-ctx.Done():
					}
				}(*async)
			}
		case c := <-done:
			pending--
			if c.err != nil {
				fmt.Fprintf(sh.out, "%s failed: %v\n", c.name, c.err)
			}
			sh.render()
		case <-ctx.Done():
			return ctx.Err()
		}

		if input == nil && pending == 0 {
			select {
			case err := <-readErr:
				return fmt.Errorf("read input: %w", err)
			default:
				return nil
			}
		}
	}
}

type command struct {
	name string
	run  func(context.Context) error
}

// dispatch handles local commands inline and returns remote ones for the
// loop to start.
func (sh *Shell) dispatch(line string) (*command, bool) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "":
		return nil, false
	case "quit", "exit":
		return nil, true
	case "help":
		fmt.Fprintln(sh.out, helpText)
	case "show":
		sh.render()
	case "draft":
		sh.session.SetDraft(arg)
		sh.render()
	case "connect":
		return sh.start(command{name: "connect", run: sh.session.Connect}), false
	case "refresh":
		return sh.start(command{name: "refresh", run: sh.session.Refresh}), false
	case "tweet", "post":
		if arg != "" {
			sh.session.SetDraft(arg)
		}
		return sh.start(command{name: "tweet", run: sh.session.Submit}), false
	case "like":
		return sh.like(arg), false
	default:
		fmt.Fprintf(sh.out, "unknown command %q, try help\n", name)
	}
	return nil, false
}

func (sh *Shell) start(c command) *command {
	fmt.Fprintf(sh.out, "%s...\n", c.name)
	logutil.Debugf("started: %s", c.name)
	return &c
}

func (sh *Shell) like(arg string) *command {
	i, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(sh.out, "like needs a post number, got %q\n", arg)
		return nil
	}
	posts := sh.session.Posts()
	if i < 0 || i >= len(posts) {
		fmt.Fprintf(sh.out, "no post #%d\n", i)
		return nil
	}
	post := posts[i]
	return sh.start(command{
		name: fmt.Sprintf("like #%d", i),
		run: func(ctx context.Context) error {
			return sh.session.Like(ctx, post.Author, post.ID)
		},
	})
}

func (sh *Shell) render() {
	sh.printer.Render(sh.out, sh.session.Snapshot())
}
