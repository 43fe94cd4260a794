/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

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

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getLICACmd returns the lica command.
func getLICACmd() *cobra.Command {
	licaCmd := &cobra.Command{
		Use:   "lica ID...",
		Short: "Find the least inclusive common ancestor of taxa",
		Long: `LICA finds the least inclusive common ancestor of taxa in the
preferred hierarchy. Taxa are given by their OTT ids, with or without
the 'ott' prefix.

Examples:
  gntnrs lica 770315 1000012
  gntnrs lica ott770315 ott1000012`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLICA(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return licaCmd
}

func runLICA(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	r, closeFn, err := newResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	lica, err := r.LICA(ctx, ids)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), lica)
}

// getSubtreeCmd returns the subtree command.
func getSubtreeCmd() *cobra.Command {
	var asJSON bool

	subtreeCmd := &cobra.Command{
		Use:   "subtree ID...",
		Short: "Print the tree induced by taxa in Newick format",
		Long: `Subtree builds the smallest tree that connects taxa through the
preferred hierarchy and prints it in Newick format. Ranks with a single
child on the way to the taxa are skipped.

Examples:
  gntnrs subtree 770315 1000010 1000012
  gntnrs subtree --json 770315 1000012`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSubtree(cmd, args, asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	subtreeCmd.Flags().BoolVarP(&asJSON, "json", "j", false,
		"print the tree as JSON")

	return subtreeCmd
}

func runSubtree(cmd *cobra.Command, args []string, asJSON bool) error {
	ctx := context.Background()
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	r, closeFn, err := newResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	st, err := r.Subtree(ctx, ids)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd.OutOrStdout(), st)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), st.Newick())
	return err
}
