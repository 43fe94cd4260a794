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
	"strconv"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/tnrs"
	"github.com/spf13/cobra"
)

type matchFlags struct {
	input       string
	contextName string
	fuzzy       bool
	dubious     bool
	deprecated  bool
	verifier    bool
	parse       bool
}

// getMatchCmd returns the match command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getMatchCmd() *cobra.Command {
	var flags matchFlags

	matchCmd := &cobra.Command{
		Use:   "match [names...]",
		Short: "Match names to taxa of the taxonomy",
		Long: `Match resolves scientific names to taxa.

Names go through a cascade of lookups:
  1. Context inference from names with a single exact match
  2. Exact matches within the context
  3. Exact matches to synonyms
  4. Fuzzy matches (with --fuzzy)
  5. GNverifier lookup of remaining names (with --verifier)

Names come from arguments and from a file with one name per line
(-i). Use '-i -' to read names from STDIN. Results are printed as JSON.
Large inputs are matched in batches of 10000 names (250 with --fuzzy).
Without -c the context is inferred once from all names and is shared
by every batch.

Examples:
  gntnrs match "Homo sapiens" "Canis lupus"
  gntnrs match -c Mammals "Homo sapiens"
  gntnrs match -f "Homo sapienz"
  gntnrs match -i names.txt --deprecated`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runMatch(cmd, args, flags)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	matchCmd.Flags().StringVarP(&flags.input, "input", "i", "",
		"file with names, one per line ('-' for STDIN)")
	matchCmd.Flags().StringVarP(&flags.contextName, "context", "c", "",
		"context name (empty to infer context)")
	matchCmd.Flags().BoolVarP(&flags.fuzzy, "fuzzy", "f", false,
		"find approximate matches to misspelled names")
	matchCmd.Flags().BoolVarP(&flags.dubious, "dubious", "d", false,
		"include dubious taxa")
	matchCmd.Flags().BoolVarP(&flags.deprecated, "deprecated", "D", false,
		"include deprecated taxa")
	matchCmd.Flags().BoolVarP(&flags.verifier, "verifier", "v", false,
		"ask GNverifier about unmatched names")
	matchCmd.Flags().BoolVarP(&flags.parse, "parse", "p", false,
		"normalize names to canonical forms with GNparser")

	return matchCmd
}

func runMatch(cmd *cobra.Command, args []string, flags matchFlags) error {
	ctx := context.Background()

	names, err := readNames(args, flags.input)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		gn.Warn("No names to match")
		return nil
	}

	var matchOpts []config.Option
	if cmd.Flags().Changed("fuzzy") {
		matchOpts = append(matchOpts, config.OptMatchDoFuzzy(flags.fuzzy))
	}
	if cmd.Flags().Changed("verifier") {
		matchOpts = append(matchOpts, config.OptVerifierEnabled(flags.verifier))
	}
	if cmd.Flags().Changed("parse") {
		matchOpts = append(matchOpts, config.OptMatchParseNames(flags.parse))
	}
	matchOpts = append(matchOpts,
		config.OptMatchIncludeDubious(flags.dubious),
		config.OptMatchIncludeDeprecated(flags.deprecated),
	)
	cfg.Update(matchOpts)

	r, closeFn, err := newResolver(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	batch := tnrs.MaxNames
	if cfg.Match.DoFuzzy {
		batch = tnrs.MaxFuzzyNames
	}

	contextName := flags.contextName
	if contextName == "" && len(names) > batch {
		ic, err := r.InferContext(ctx, names)
		if err != nil {
			return err
		}
		contextName = ic.Context.Name
		gn.Info("Context for all batches: <em>%s</em>", contextName)
	}

	for start := 0; start < len(names); start += batch {
		end := min(start+batch, len(names))
		req := tnrs.Request{
			Names:             names[start:end],
			IDs:               batchIDs(start, end),
			Context:           contextName,
			DoFuzzy:           cfg.Match.DoFuzzy,
			IncludeDubious:    cfg.Match.IncludeDubious,
			IncludeDeprecated: cfg.Match.IncludeDeprecated,
		}
		res, err := r.MatchNames(ctx, req)
		if err != nil {
			return err
		}
		if err = printJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	}
	return nil
}

// batchIDs keeps ids of names unique across batches.
func batchIDs(start, end int) []string {
	res := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		res = append(res, strconv.Itoa(i))
	}
	return res
}
