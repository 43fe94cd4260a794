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

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/internal/iooptimize"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Clean up and tune a populated database",
		Long: `Optimize a populated taxonomy database.

This command removes name entries left without their taxa (for example
after an interrupted populate) and runs VACUUM ANALYZE, so the query
planner has fresh statistics for exact, fuzzy and prefix lookups.

Prerequisites:
  - Database must be created (run 'gntnrs create' first)
  - Database must be populated (run 'gntnrs populate' first)

Examples:
  # Optimize the configured database
  gntnrs optimize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, args)
		},
	}

	return optimizeCmd
}

func runOptimize(
	_ *cobra.Command,
	_ []string,
) error {
	ctx := context.Background()

	op, err := connect(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
Run 'gntnrs create' first to initialize the schema.`)
		return nil
	}

	optimizer := iooptimize.NewOptimizer(op)

	gn.Info("Starting database optimization...")
	if err := optimizer.Optimize(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info(`Database optimization is complete!

You can re-run 'gntnrs optimize' after every populate.`)

	return nil
}
