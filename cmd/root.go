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
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/blacktop/dtweet/internal/crosspost"
	"github.com/blacktop/dtweet/internal/dtweet"
	"github.com/blacktop/dtweet/internal/dtweet/contract"
	"github.com/blacktop/dtweet/internal/dtweet/session"
	"github.com/blacktop/dtweet/internal/dtweet/shell"
	"github.com/blacktop/dtweet/internal/dtweet/view"
	"github.com/blacktop/dtweet/internal/dtweet/wallet"
	"github.com/blacktop/dtweet/internal/logutil"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	verboseFlag  bool
	colorFlag    bool
	providerFlag string
	mirrorFlag   []string
	pollFlag     time.Duration
)

const prompt = "dtweet> "

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dtweet",
		Short: "Tweet on-chain from your terminal",
		Long: "dtweet talks to the Twitter smart contract through your wallet provider. " +
			"Without a subcommand it opens an interactive session: connect, write a draft, tweet and like.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runShell,
		Example: `  DTWEET_PROVIDER_URL=http://127.0.0.1:1248 dtweet
  dtweet tweet "gm"
  dtweet like 0x1234567890abcdef1234567890abcdef12345678 3
  dtweet list --mirror none`,
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&verboseFlag, "verbose", "V", false, "Enable debug logging")
	flags.BoolVar(&colorFlag, "color", false, "Colorize output")
	flags.StringVar(&providerFlag, "provider", "", "Wallet provider JSON-RPC URL (overrides DTWEET_PROVIDER_URL)")
	flags.StringSliceVar(&mirrorFlag, "mirror", nil, "Mirror new tweets to (twitter, mastodon, bluesky, all or none; overrides DTWEET_MIRROR)")
	flags.DurationVar(&pollFlag, "poll-interval", 0, "Receipt polling interval (overrides DTWEET_POLL_INTERVAL)")
	flags.SortFlags = false

	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newTweetCommand())
	cmd.AddCommand(newLikeCommand())
	cmd.AddCommand(newCompletionCommand())

	return cmd
}

func setup(cmd *cobra.Command, _ []string) error {
	logutil.SetVerbose(verboseFlag)
	return nil
}

// app is everything a command needs, built once per invocation.
type app struct {
	session *session.Session
	printer view.Printer
	close   func()
}

func newApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()

	cfg, err := dtweet.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("provider") {
		cfg.ProviderURL = strings.TrimSpace(providerFlag)
	}
	if cmd.Flags().Changed("mirror") {
		cfg.Mirror = mirrorFlag
	}
	if pollFlag > 0 {
		cfg.PollInterval = pollFlag
	}

	a := &app{printer: view.NewPrinter(colorFlag), close: func() {}}

	provider, err := wallet.Dial(ctx, cfg.ProviderURL)
	if err != nil {
		logutil.Errorf("no web3 provider detected: %v", err)
		a.session = session.New(wallet.Unavailable{Err: err}, nil)
		return a, nil
	}
	a.close = provider.Close

	targets, err := crosspost.NormalizeTargets(cfg.Mirror)
	if err != nil {
		provider.Close()
		return nil, err
	}
	posters, err := buildPosters(ctx, targets)
	if err != nil {
		provider.Close()
		return nil, err
	}

	binding := contract.New(provider.Client(), contract.WithPollInterval(cfg.PollInterval))
	a.session = session.New(provider, crosspost.Wrap(binding, posters...))
	logutil.Debugf("bound contract %s via %s", contract.Address.Hex(), provider.URL())

	return a, nil
}

func runShell(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	in, out, restore, err := openTerminal(cmd)
	if err != nil {
		return err
	}
	defer restore()

	return shell.New(a.session, a.printer, in, out).Run(cmd.Context())
}

// openTerminal puts an interactive stdin into raw mode behind a line editor.
// Piped input is read line by line.
func openTerminal(cmd *cobra.Command) (shell.LineReader, io.Writer, func(), error) {
	stdin, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(stdin.Fd())) {
		return shell.NewLineReader(cmd.InOrStdin()), cmd.OutOrStdout(), func() {}, nil
	}

	fd := int(stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("enable raw mode: %w", err)
	}

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{stdin, cmd.OutOrStdout()}, prompt)
	logutil.SetOutput(t)

	restore := func() {
		logutil.SetOutput(os.Stderr)
		if err := term.Restore(fd, state); err != nil {
			logutil.Errorf("restore terminal: %v", err)
		}
	}
	return t, t, restore, nil
}

// connect runs the connect action for one-shot commands.
func (a *app) connect(cmd *cobra.Command) error {
	if err := a.session.Connect(cmd.Context()); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}
