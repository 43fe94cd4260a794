package cmd

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntnrs/internal/iodb"
	"github.com/gnames/gntnrs/internal/iograph"
	"github.com/gnames/gntnrs/internal/ioindex"
	"github.com/gnames/gntnrs/internal/iostore"
	"github.com/gnames/gntnrs/internal/iotaxonomy"
	"github.com/gnames/gntnrs/internal/ioverifier"
	gntnrs "github.com/gnames/gntnrs/pkg"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/db"
	"github.com/gnames/gntnrs/pkg/errcode"
	"github.com/gnames/gntnrs/pkg/parserpool"
	"github.com/gnames/gntnrs/pkg/taxonomy"
)

// closer releases resources of an opened taxonomy.
type closer func()

// newResolver opens the configured taxonomy and wraps it into a
// Resolver. The returned closer must be called when work is done.
func newResolver(ctx context.Context, cfg *config.Config) (gntnrs.Resolver, closer, error) {
	g, closeGraph, err := openGraph(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var opts []gntnrs.Option
	closeAll := closeGraph
	if cfg.Match.ParseNames {
		pool := parserpool.NewPool(cfg.JobsNumber)
		opts = append(opts, gntnrs.OptNormalizer(pool))
		closeAll = func() {
			pool.Close()
			closeGraph()
		}
	}
	if cfg.Verifier.Enabled {
		slog.Info("GNverifier is enabled", "url", cfg.Verifier.URL)
		opts = append(opts, gntnrs.OptAdapters(ioverifier.New(cfg.Verifier)))
	}

	return gntnrs.New(cfg, g, opts...), closeAll, nil
}

// openGraph opens a taxonomy graph of the configured backend.
func openGraph(ctx context.Context, cfg *config.Config) (taxonomy.Graph, closer, error) {
	switch cfg.Taxonomy.Backend {
	case db.Postgres, db.SQLite:
		return openStore(ctx, cfg)
	default:
		return openMemory(cfg)
	}
}

func openMemory(cfg *config.Config) (taxonomy.Graph, closer, error) {
	start := time.Now()
	src, err := loadSource(cfg.Taxonomy.Dir)
	if err != nil {
		return nil, nil, err
	}

	var opts []iograph.Option
	if idx := nameIndex(cfg); idx != nil {
		opts = append(opts, iograph.OptNameIndex(idx))
	}
	g, err := iograph.New(src, opts...)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("Taxonomy loaded",
		"taxa", humanize.Comma(int64(len(src.Taxa))),
		"synonyms", humanize.Comma(int64(len(src.Synonyms))),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return g, func() { g.Close() }, nil
}

func openStore(ctx context.Context, cfg *config.Config) (taxonomy.Graph, closer, error) {
	op, err := iodb.New(cfg.Taxonomy.Backend)
	if err != nil {
		return nil, nil, err
	}
	if err = op.Connect(ctx, cfg); err != nil {
		return nil, nil, err
	}

	var opts []iostore.Option
	if idx := nameIndex(cfg); idx != nil {
		opts = append(opts, iostore.OptNameIndex(idx))
	}
	st, err := iostore.New(ctx, op, opts...)
	if err != nil {
		op.Close()
		return nil, nil, err
	}
	return st, func() {
		st.Close()
		op.Close()
	}, nil
}

// nameIndex returns a bleve index when it is configured. Nil means the
// default index of the backend.
func nameIndex(cfg *config.Config) iograph.NameIndex {
	if cfg.Index.Engine != "bleve" {
		return nil
	}
	return ioindex.New(cfg.Index.Path)
}

// loadSource reads OTT files from a directory or a YAML taxonomy file.
func loadSource(path string) (taxonomy.Source, error) {
	if path == "" {
		err := &gn.Error{
			Code: errcode.TaxonomyReadError,
			Msg: `Taxonomy location is not set.
   Set <em>taxonomy.dir</em> in config or <em>GNTNRS_TAXONOMY_DIR</em>.`,
			Err: errors.New("taxonomy dir is empty"),
		}
		return taxonomy.Source{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return iotaxonomy.LoadYAML(path)
	default:
		return iotaxonomy.LoadOTT(path)
	}
}
