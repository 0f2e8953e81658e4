package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/blacktop/dtweet/internal/dtweet"
	"github.com/blacktop/dtweet/internal/dtweet/session"
	"github.com/buger/goterm"
	colorPkg "github.com/fatih/color"
)

const (
	title        = "Twitter DAPP"
	placeholder  = "What's happening?"
	defaultWidth = 60
)

// Printer renders a session snapshot.
type Printer interface {
	Render(w io.Writer, snap session.Snapshot)
}

// NewPrinter returns the colored printer when color is set, the plain one
// otherwise.
func NewPrinter(color bool) Printer {
	if color {
		return newColor()
	}
	return &text{}
}

func separatorWidth() int {
	if width := goterm.Width(); width > 0 {
		return width
	}
	return defaultWidth
}

type text struct{}

func (t *text) Render(w io.Writer, snap session.Snapshot) {
	fmt.Fprintln(w, title)
	if snap.State != session.Connected {
		fmt.Fprintln(w, "[connect] Connect Wallet")
		return
	}
	fmt.Fprintf(w, "Connected: %s\n", dtweet.ShortAddress(snap.Account.Hex()))
	t.printVerticalLine(w)

	fmt.Fprintf(w, "[tweet] %s\n", placeholder)
	if snap.Draft != "" {
		fmt.Fprintf(w, "draft: %s\n", snap.Draft)
	}
	t.printVerticalLine(w)

	for i, p := range snap.Posts {
		t.printPost(w, i, p)
		t.printVerticalLine(w)
	}
}

func (t *text) printVerticalLine(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", separatorWidth()))
}

func (t *text) printPost(w io.Writer, i int, p dtweet.Post) {
	fmt.Fprintf(w, "#%d %s (%s)\n", i, dtweet.ShortAddress(p.Author.Hex()), dtweet.AvatarURL(p.Author))
	fmt.Fprintln(w, p.Content)
	fmt.Fprintf(w, "[like %d] ♥ %d\n", i, p.Likes)
}

type color struct {
	white, blue, bold, red *colorPkg.Color
}

func newColor() *color {
	return &color{
		white: colorPkg.New(colorPkg.FgWhite),
		blue:  colorPkg.New(colorPkg.FgBlue),
		bold:  colorPkg.New(colorPkg.FgBlue, colorPkg.Bold),
		red:   colorPkg.New(colorPkg.FgRed),
	}
}

func (c *color) Render(w io.Writer, snap session.Snapshot) {
	c.bold.Fprintln(w, title)
	if snap.State != session.Connected {
		c.white.Fprint(w, "[connect] ")
		c.blue.Fprintln(w, "Connect Wallet")
		return
	}
	c.blue.Fprintf(w, "Connected: %s\n", dtweet.ShortAddress(snap.Account.Hex()))
	c.printVerticalLine(w)

	c.white.Fprintf(w, "[tweet] %s\n", placeholder)
	if snap.Draft != "" {
		c.white.Fprintf(w, "draft: %s\n", snap.Draft)
	}
	c.printVerticalLine(w)

	for i, p := range snap.Posts {
		c.printPost(w, i, p)
		c.printVerticalLine(w)
	}
}

func (c *color) printVerticalLine(w io.Writer) {
	c.white.Fprintln(w, strings.Repeat("-", separatorWidth()))
}

func (c *color) printPost(w io.Writer, i int, p dtweet.Post) {
	c.white.Fprintf(w, "#%d ", i)
	c.bold.Fprint(w, dtweet.ShortAddress(p.Author.Hex()))
	c.white.Fprintf(w, " (%s)\n%s\n", dtweet.AvatarURL(p.Author), p.Content)
	c.white.Fprintf(w, "[like %d] ", i)
	c.red.Fprint(w, "♥")
	c.blue.Fprintf(w, " %d\n", p.Likes)
}
