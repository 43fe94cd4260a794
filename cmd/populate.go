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
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/internal/iopopulate"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/errcode"
	"github.com/spf13/cobra"
)

// getPopulateCmd returns the populate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getPopulateCmd() *cobra.Command {
	var (
		taxonomyDir string
		batchSize   int
	)

	populateCmd := &cobra.Command{
		Use:   "populate",
		Short: "Populate database with OTT taxonomy",
		Long: `Load a taxonomy into the database.

This command:
  1. Connects to PostgreSQL or SQLite, as set by taxonomy.backend
  2. Reads OTT taxonomy.tsv, synonyms.tsv and deprecated.tsv files
     (or a YAML taxonomy file)
  3. Builds the preferred hierarchy, taxonomic contexts and name
     indexes in memory
  4. Replaces taxa, name entries and metadata in the database
  5. Reports progress and statistics

The taxonomy location defaults to taxonomy.dir of the configuration.

Examples:
  gntnrs populate -t ~/data/ott3.7
  gntnrs populate -t taxonomy.yaml -b 10000`,
		Aliases: []string{"add"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPopulate(cmd, taxonomyDir, batchSize)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	populateCmd.Flags().StringVarP(
		&taxonomyDir, "taxonomy", "t", "",
		"OTT directory or YAML taxonomy file",
	)
	populateCmd.Flags().IntVarP(
		&batchSize, "batch-size", "b", 0,
		"rows per insert batch",
	)

	return populateCmd
}

func runPopulate(
	cmd *cobra.Command,
	taxonomyDir string,
	batchSize int,
) error {
	ctx := context.Background()

	var populateOpts []config.Option
	if cmd.Flags().Changed("taxonomy") {
		populateOpts = append(populateOpts, config.OptTaxonomyDir(taxonomyDir))
	}
	if cmd.Flags().Changed("batch-size") {
		populateOpts = append(populateOpts, config.OptDatabaseBatchSize(batchSize))
	}
	if len(populateOpts) > 0 {
		cfg.Update(populateOpts)
	}

	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}

	if !hasTables {
		err = &gn.Error{
			Code: errcode.DBEmptyDatabaseError,
			Msg: `<err>Database appears to be empty.</err>
   Run <em>'gntnrs create'</em> first to initialize the schema.`,
			Err: errors.New("cannot insert data into empty database"),
		}
		return err
	}

	gn.Info("Reading taxonomy from <em>%s</em>...", cfg.Taxonomy.Dir)
	src, err := loadSource(cfg.Taxonomy.Dir)
	if err != nil {
		return err
	}

	populator := iopopulate.New(cfg, op)
	if err = populator.Populate(ctx, src); err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Run '<em>gntnrs match "Homo sapiens"</em>' to check the taxonomy
`)

	return nil
}
