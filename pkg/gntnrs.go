// Package gntnrs composes the name resolution engine with a taxonomy
// graph, configuration and external sources into one Resolver.
package gntnrs

import (
	"context"

	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/taxonomy"
	"github.com/gnames/gntnrs/pkg/tnrs"
)

// Resolver is the public API of GNtnrs.
type Resolver interface {
	// MatchNames resolves a batch of names.
	MatchNames(ctx context.Context, req tnrs.Request) (*tnrs.Results, error)

	// Autocomplete finds taxa for an incomplete name within a context.
	// Empty context name means all life.
	Autocomplete(ctx context.Context, query, contextName string) (*tnrs.MatchSet, error)

	// InferContext finds the least inclusive context of names.
	InferContext(ctx context.Context, names []string) (tnrs.ContextResult, error)

	// Contexts lists context names by groups.
	Contexts() []taxonomy.ContextGroupList

	// LICA returns the least inclusive common ancestor of taxa.
	LICA(ctx context.Context, ids []int64) (taxonomy.Taxon, error)

	// Subtree returns the tree induced by taxa.
	Subtree(ctx context.Context, ids []int64) (*taxonomy.Subtree, error)
}

type resolver struct {
	cfg        *config.Config
	g          taxonomy.Graph
	adapters   []tnrs.Adapter
	normalizer tnrs.Normalizer
}

// Option configures the Resolver.
type Option func(*resolver)

// OptAdapters sets external sources asked about unmatched names.
func OptAdapters(aa ...tnrs.Adapter) Option {
	return func(r *resolver) {
		r.adapters = aa
	}
}

// OptNormalizer sets a normalizer of query strings.
func OptNormalizer(n tnrs.Normalizer) Option {
	return func(r *resolver) {
		r.normalizer = n
	}
}

// New creates a Resolver over a taxonomy graph.
func New(cfg *config.Config, g taxonomy.Graph, opts ...Option) Resolver {
	res := &resolver{cfg: cfg, g: g}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (r *resolver) MatchNames(
	ctx context.Context,
	req tnrs.Request,
) (*tnrs.Results, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var c *taxonomy.Context
	if req.Context != "" {
		cntx, err := taxonomy.ContextByName(req.Context)
		if err != nil {
			return nil, err
		}
		c = &cntx
	}

	q := tnrs.NewMultiNameQuery(r.g, r.queryOptions(
		tnrs.OptDoFuzzy(req.DoFuzzy),
		tnrs.OptIncludeDubious(req.IncludeDubious),
		tnrs.OptIncludeDeprecated(req.IncludeDeprecated),
		tnrs.OptAdapters(r.adapters...),
	)...)
	return q.Run(ctx, req.QueryNames(), c)
}

func (r *resolver) Autocomplete(
	ctx context.Context,
	query, contextName string,
) (*tnrs.MatchSet, error) {
	c, err := taxonomy.ContextByName(contextName)
	if err != nil {
		return nil, err
	}
	q := tnrs.NewPrefixQuery(r.g, r.cfg.Match.MinPrefixLength)
	return q.Run(ctx, query, c)
}

func (r *resolver) InferContext(
	ctx context.Context,
	names []string,
) (tnrs.ContextResult, error) {
	if len(names) == 0 {
		return tnrs.ContextResult{}, taxonomy.EmptyInputError("InferContext")
	}
	q := tnrs.NewMultiNameQuery(r.g, r.queryOptions(
		tnrs.OptIncludeDubious(r.cfg.Match.IncludeDubious),
	)...)
	return q.InferContext(ctx, names)
}

func (r *resolver) Contexts() []taxonomy.ContextGroupList {
	return taxonomy.ContextsByGroup()
}

func (r *resolver) LICA(ctx context.Context, ids []int64) (taxonomy.Taxon, error) {
	ts, err := r.taxonSet(ctx, ids)
	if err != nil {
		return taxonomy.Taxon{}, err
	}
	return ts.LICA(ctx, r.g, true)
}

func (r *resolver) Subtree(
	ctx context.Context,
	ids []int64,
) (*taxonomy.Subtree, error) {
	ts, err := r.taxonSet(ctx, ids)
	if err != nil {
		return nil, err
	}
	return ts.InducedSubtree(ctx, r.g)
}

func (r *resolver) taxonSet(
	ctx context.Context,
	ids []int64,
) (*taxonomy.TaxonSet, error) {
	taxa := make([]taxonomy.Taxon, 0, len(ids))
	for _, id := range ids {
		t, err := r.g.TaxonByID(ctx, id)
		if err != nil {
			return nil, err
		}
		taxa = append(taxa, t)
	}
	return taxonomy.NewTaxonSet(taxa...), nil
}

// queryOptions adds options coming from configuration to per-request
// ones.
func (r *resolver) queryOptions(opts ...tnrs.Option) []tnrs.Option {
	res := []tnrs.Option{
		tnrs.OptMinScore(r.cfg.Match.MinScore),
		tnrs.OptInferContext(r.cfg.Match.InferContext),
		tnrs.OptMatchSpToGenus(r.cfg.Match.MatchSpToGenus),
		tnrs.OptJobs(r.cfg.JobsNumber),
	}
	if r.normalizer != nil {
		res = append(res, tnrs.OptNormalizer(r.normalizer))
	}
	return append(res, opts...)
}
