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
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getAutocompleteCmd returns the autocomplete command.
func getAutocompleteCmd() *cobra.Command {
	var contextName string

	autocompleteCmd := &cobra.Command{
		Use:   "autocomplete QUERY",
		Short: "Find taxa for an incomplete name",
		Long: `Autocomplete finds taxa whose names start with the query.

Exact names go first, then prefix matches, then fuzzy matches. A query of
two words looks for species of the genus given by the first word. Higher
taxa are listed before species.

Examples:
  gntnrs autocomplete "Aster al"
  gntnrs autocomplete -c "Flowering plants" Ros`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAutocomplete(cmd, strings.Join(args, " "), contextName)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	autocompleteCmd.Flags().StringVarP(&contextName, "context", "c", "",
		"context name (empty for all life)")

	return autocompleteCmd
}

func runAutocomplete(cmd *cobra.Command, query, contextName string) error {
	ctx := context.Background()
	r, closeFn, err := newResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ms, err := r.Autocomplete(ctx, query, contextName)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), ms)
}
