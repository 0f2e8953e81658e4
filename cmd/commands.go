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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Connect and print your tweets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.connect(cmd); err != nil {
				return err
			}
			a.printer.Render(cmd.OutOrStdout(), a.session.Snapshot())
			return nil
		},
	}
}

func newTweetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tweet [message]",
		Aliases: []string{"post"},
		Short:   "Connect, tweet a message and print your tweets",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.connect(cmd); err != nil {
				return err
			}
			a.session.SetDraft(strings.Join(args, " "))
			if err := a.session.Submit(cmd.Context()); err != nil {
				return err
			}
			a.printer.Render(cmd.OutOrStdout(), a.session.Snapshot())
			return nil
		},
	}
}

func newLikeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "like <author> <id>",
		Short: "Connect and like a tweet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			author, id, err := parseLikeArgs(args)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.connect(cmd); err != nil {
				return err
			}
			if err := a.session.Like(cmd.Context(), author, id); err != nil {
				return err
			}
			a.printer.Render(cmd.OutOrStdout(), a.session.Snapshot())
			return nil
		},
	}
}

func parseLikeArgs(args []string) (common.Address, uint64, error) {
	if !common.IsHexAddress(args[0]) {
		return common.Address{}, 0, fmt.Errorf("invalid author address %q", args[0])
	}
	id, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return common.Address{}, 0, errors.New("tweet id must be a non-negative integer")
	}
	return common.HexToAddress(args[0]), id, nil
}
