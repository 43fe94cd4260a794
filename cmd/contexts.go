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
	"strings"

	"github.com/gnames/gn"
	gntnrs "github.com/gnames/gntnrs/pkg"
	"github.com/spf13/cobra"
)

// getInferContextCmd returns the infer-context command.
func getInferContextCmd() *cobra.Command {
	var input string

	inferCmd := &cobra.Command{
		Use:   "infer-context [names...]",
		Short: "Infer the taxonomic context of names",
		Long: `Infer-context finds the least inclusive context that contains
taxa of names with a single exact match. Names with several matches or
without matches are listed as ambiguous.

Examples:
  gntnrs infer-context "Homo sapiens" "Canis lupus"
  gntnrs infer-context -i names.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInferContext(cmd, args, input)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	inferCmd.Flags().StringVarP(&input, "input", "i", "",
		"file with names, one per line ('-' for STDIN)")

	return inferCmd
}

func runInferContext(cmd *cobra.Command, args []string, input string) error {
	ctx := context.Background()
	names, err := readNames(args, input)
	if err != nil {
		return err
	}

	r, closeFn, err := newResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := r.InferContext(ctx, names)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}

// getContextsCmd returns the contexts command.
func getContextsCmd() *cobra.Command {
	var asJSON bool

	contextsCmd := &cobra.Command{
		Use:   "contexts",
		Short: "List taxonomic contexts",
		Long: `Contexts prints names of taxonomic contexts arranged by groups.
A context name can be given to 'match' and 'autocomplete' commands.

Examples:
  gntnrs contexts
  gntnrs contexts --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runContexts(cmd, asJSON)
		},
	}

	contextsCmd.Flags().BoolVarP(&asJSON, "json", "j", false,
		"print contexts as JSON")

	return contextsCmd
}

func runContexts(cmd *cobra.Command, asJSON bool) error {
	// contexts are static, no taxonomy has to be loaded
	groups := gntnrs.New(cfg, nil).Contexts()
	if asJSON {
		return printJSON(cmd.OutOrStdout(), groups)
	}
	w := cmd.OutOrStdout()
	for _, g := range groups {
		fmt.Fprintf(w, "%s:\n", g.Group)
		fmt.Fprintf(w, "  %s\n", strings.Join(g.Names, ", "))
	}
	return nil
}
