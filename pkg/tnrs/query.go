package tnrs

import (
	"context"
	"log/slog"
	"maps"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gnames/gntnrs/pkg/strsim"
	"github.com/gnames/gntnrs/pkg/taxonomy"
)

// MultiNameQuery resolves a batch of names in a cascade of stages:
// context inference, exact names within the context, exact synonyms and
// fuzzy matches. A name leaves the cascade at the first stage that finds
// matches for it.
type MultiNameQuery struct {
	g taxonomy.Graph

	minScore          float64
	doFuzzy           bool
	includeDubious    bool
	includeDeprecated bool
	matchSpToGenus    bool
	inferContext      bool
	jobs              int
	normalizer        Normalizer
	adapters          []Adapter
}

// NewMultiNameQuery creates a query over a graph. By default fuzzy
// matching, context inference and "Genus sp." matching are on.
func NewMultiNameQuery(g taxonomy.Graph, opts ...Option) *MultiNameQuery {
	res := &MultiNameQuery{
		g:              g,
		minScore:       DefaultMinScore,
		doFuzzy:        true,
		matchSpToGenus: true,
		inferContext:   true,
		jobs:           1,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// queryName is a prepared query string.
type queryName struct {
	id string
	// name is the scrubbed (and normalized) name used for queries.
	name string
	// lower is the lower-case name for edit distance.
	lower string
}

// outcome is what one stage found for one name.
type outcome struct {
	hits     []Hit
	exact    []taxonomy.Taxon
	direct   bool
	resolved bool
}

type stage struct {
	name string
	fn   func(context.Context, []queryName) ([]queryName, error)
}

// run keeps the state of one Run call.
type run struct {
	q       *MultiNameQuery
	res     *Results
	context taxonomy.Context
	exact   []taxonomy.Taxon
	lica    taxonomy.Taxon
}

// Run resolves names. With nil context the context is inferred from
// names that have a single exact match in the whole taxonomy.
func (q *MultiNameQuery) Run(
	ctx context.Context,
	names []QueryName,
	c *taxonomy.Context,
) (*Results, error) {
	r := q.newRun()
	pending := r.prepare(names)

	var err error
	switch {
	case c != nil:
		r.context = *c
	case q.inferContext:
		pending, err = r.inferStage(ctx, pending)
		if err != nil {
			return nil, err
		}
	default:
		r.context = taxonomy.AllLife
	}

	stages := []stage{
		{"exact", r.exactStage},
		{"synonym", r.synonymStage},
	}
	if q.doFuzzy {
		stages = append(stages, stage{"fuzzy", r.fuzzyStage})
	}

	for _, st := range stages {
		if len(pending) == 0 {
			break
		}
		slog.Debug("Running stage",
			"stage", st.name, "names", len(pending), "context", r.context.Name,
		)
		pending, err = st.fn(ctx, pending)
		if err != nil {
			return nil, err
		}
	}

	for _, qn := range pending {
		r.res.addUnmatched(qn.id)
	}

	r.runAdapters(ctx)

	if err = r.finish(ctx); err != nil {
		return nil, err
	}
	return r.res, nil
}

// InferContext runs only context inference. Names without a single exact
// match in the whole taxonomy are returned as ambiguous.
func (q *MultiNameQuery) InferContext(
	ctx context.Context,
	names []string,
) (ContextResult, error) {
	r := q.newRun()
	qns := make([]QueryName, len(names))
	for i := range names {
		qns[i] = QueryName{ID: strconv.Itoa(i), Name: names[i]}
	}
	pending := r.prepare(qns)
	residual, err := r.inferStage(ctx, pending)
	if err != nil {
		return ContextResult{}, err
	}
	res := ContextResult{Context: r.context, AmbiguousNames: []string{}}
	for _, qn := range residual {
		res.AmbiguousNames = append(res.AmbiguousNames, qn.name)
	}
	return res, nil
}

func (q *MultiNameQuery) newRun() *run {
	res := newResults()
	res.minScore = q.minScore
	res.includesDubious = q.includeDubious
	res.includesDeprecated = q.includeDeprecated
	res.includesApproximate = q.doFuzzy
	return &run{q: q, res: res, context: taxonomy.AllLife}
}

// kind swaps preferred indexes for their dubious counterparts when
// dubious taxa are requested.
func (q *MultiNameQuery) kind(k taxonomy.IndexKind) taxonomy.IndexKind {
	if q.includeDubious {
		return k.ForDubious()
	}
	return k
}

// prepare scrubs names. Empty names go directly to the unmatched set.
func (r *run) prepare(names []QueryName) []queryName {
	res := make([]queryName, 0, len(names))
	for _, v := range names {
		r.res.addQueried(v.ID, v.Name)
		name := ScrubName(v.Name)
		if name != "" && r.q.normalizer != nil {
			if norm := r.q.normalizer.Normalize(name); norm != "" {
				name = norm
			}
		}
		if name == "" {
			r.res.addUnmatched(v.ID)
			continue
		}
		res = append(res, queryName{
			id:    v.ID,
			name:  name,
			lower: strings.ToLower(name),
		})
	}
	return res
}

// apply records outcomes in input order and returns unresolved names.
func (r *run) apply(names []queryName, outs []outcome) []queryName {
	var residual []queryName
	for i, qn := range names {
		o := outs[i]
		if len(o.hits) > 0 {
			ms := r.res.matchSet(qn.id)
			for _, h := range o.hits {
				ms.Add(h)
			}
			r.res.setMatches(qn.id, ms)
		}
		r.exact = append(r.exact, o.exact...)
		if o.direct {
			r.res.addDirect(qn.id)
		}
		if !o.resolved {
			residual = append(residual, qn)
		}
	}
	return residual
}

func (r *run) updateLICA(ctx context.Context) error {
	if len(r.exact) == 0 {
		root, err := r.q.g.Root(ctx)
		if err != nil {
			return err
		}
		r.lica = root
		return nil
	}
	lica, err := taxonomy.NewTaxonSet(r.exact...).LICA(ctx, r.q.g, true)
	if err != nil {
		return err
	}
	r.lica = lica
	return nil
}

// inferStage matches names against the whole taxonomy. Names with exactly
// one hit are resolved and their LICA sets the working context.
func (r *run) inferStage(
	ctx context.Context,
	names []queryName,
) ([]queryName, error) {
	kind := r.q.kind(taxonomy.PrefName)
	outs, err := r.each(ctx, names,
		func(ctx context.Context, qn queryName) (outcome, error) {
			var o outcome
			nms, err := r.q.g.ExactMatch(ctx, taxonomy.AllLife, kind, qn.name)
			if err != nil {
				return o, err
			}
			if len(nms) != 1 {
				return o, nil
			}
			h := NewTaxonHit(nms[0], qn.name)
			h.IsPerfectMatch = true
			h.Score = PerfectScore
			o.hits = append(o.hits, h)
			o.exact = append(o.exact, nms[0].Taxon)
			o.direct = true
			o.resolved = true

			// unresolved names get deprecated hits in the exact stage
			dep, err := r.deprecatedExact(ctx, qn, PerfectScore)
			if err != nil {
				return o, err
			}
			o.hits = append(o.hits, dep...)
			return o, nil
		})
	if err != nil {
		return nil, err
	}

	residual := r.apply(names, outs)
	if err = r.updateLICA(ctx); err != nil {
		return nil, err
	}
	r.context, err = taxonomy.LeastInclusiveContext(ctx, r.q.g, r.lica)
	if err != nil {
		return nil, err
	}
	slog.Debug("Context inferred",
		"context", r.context.Name, "lica", r.lica.Name,
		"ambiguous", len(residual),
	)
	return residual, nil
}

// exactStage matches names within the working context. Names with one hit
// are direct matches, several hits make a homonym.
func (r *run) exactStage(
	ctx context.Context,
	names []queryName,
) ([]queryName, error) {
	kind := r.q.kind(taxonomy.PrefName)
	outs, err := r.each(ctx, names,
		func(ctx context.Context, qn queryName) (outcome, error) {
			var o outcome
			nms, err := r.q.g.ExactMatch(ctx, r.context, kind, qn.name)
			if err != nil {
				return o, err
			}

			score := PerfectScore
			var genusSp bool
			if len(nms) == 0 && r.q.matchSpToGenus {
				if genus, ok := genusOfSpName(qn.name); ok {
					nms, err = r.q.g.ExactMatch(ctx, r.context, kind, genus)
					if err != nil {
						return o, err
					}
					genusSp = true
					score = GenusSpScore
				}
			}

			isHomonym := len(nms) > 1
			for _, nm := range nms {
				h := NewTaxonHit(nm, qn.name)
				h.IsHomonym = isHomonym
				h.IsPerfectMatch = !isHomonym && !genusSp
				h.Score = score
				o.hits = append(o.hits, h)
				if !genusSp {
					o.exact = append(o.exact, nm.Taxon)
				}
			}
			o.direct = len(nms) == 1 && !genusSp

			dep, err := r.deprecatedExact(ctx, qn, score)
			if err != nil {
				return o, err
			}
			o.hits = append(o.hits, dep...)
			o.resolved = len(o.hits) > 0
			return o, nil
		})
	if err != nil {
		return nil, err
	}

	residual := r.apply(names, outs)
	if err = r.updateLICA(ctx); err != nil {
		return nil, err
	}
	return residual, nil
}

// synonymStage matches names to synonyms within the working context.
func (r *run) synonymStage(
	ctx context.Context,
	names []queryName,
) ([]queryName, error) {
	kind := r.q.kind(taxonomy.PrefSynonym)
	outs, err := r.each(ctx, names,
		func(ctx context.Context, qn queryName) (outcome, error) {
			var o outcome
			nms, err := r.q.g.ExactMatch(ctx, r.context, kind, qn.name)
			if err != nil {
				return o, err
			}
			isHomonym := distinctTaxa(nms) > 1
			for _, nm := range nms {
				h := NewTaxonHit(nm, qn.name)
				h.IsSynonym = true
				h.IsHomonym = isHomonym
				h.Score = PerfectScore
				o.hits = append(o.hits, h)
			}
			o.resolved = len(o.hits) > 0
			return o, nil
		})
	if err != nil {
		return nil, err
	}
	return r.apply(names, outs), nil
}

// fuzzyStage finds approximate matches to names and synonyms. Scores of
// hits outside of the working LICA decay with their distance to it.
func (r *run) fuzzyStage(
	ctx context.Context,
	names []queryName,
) ([]queryName, error) {
	kind := r.q.kind(taxonomy.PrefNameOrSynonym)
	outs, err := r.each(ctx, names,
		func(ctx context.Context, qn queryName) (outcome, error) {
			var o outcome
			minIdentity := strsim.MinIdentity(qn.lower)
			// names too short to tolerate an edit
			if minIdentity <= 0 {
				return o, nil
			}
			nms, err := r.q.g.FuzzyMatch(ctx, r.context, kind, qn.name, minIdentity)
			if err != nil {
				return o, err
			}
			for _, nm := range nms {
				h, ok := r.fuzzyHit(qn, nm)
				if !ok {
					continue
				}
				decay, err := r.distanceDecay(ctx, nm.Taxon)
				if err != nil {
					return o, err
				}
				h.Score *= decay
				if h.Score < r.q.minScore {
					continue
				}
				o.hits = append(o.hits, h)
			}

			if r.q.includeDeprecated {
				nms, err = r.q.g.FuzzyMatch(
					ctx, taxonomy.AllLife, taxonomy.Deprecated, qn.name, minIdentity,
				)
				if err != nil {
					return o, err
				}
				for _, nm := range nms {
					h, ok := r.fuzzyHit(qn, nm)
					if !ok || h.Score < r.q.minScore {
						continue
					}
					o.hits = append(o.hits, h)
				}
			}
			o.resolved = len(o.hits) > 0
			return o, nil
		})
	if err != nil {
		return nil, err
	}
	return r.apply(names, outs), nil
}

// fuzzyHit scores a fuzzy hit by edit distance between the name and the
// matched string, normalized by the length of the shorter one.
func (r *run) fuzzyHit(qn queryName, nm taxonomy.NameMatch) (Hit, bool) {
	matched := nm.MatchedName
	if matched == "" {
		matched = nm.Name
	}
	matched = strings.ToLower(matched)
	shorter := min(
		utf8.RuneCountInString(qn.lower),
		utf8.RuneCountInString(matched),
	)
	if shorter == 0 {
		return Hit{}, false
	}
	dist := strsim.Distance(qn.lower, matched)

	h := NewTaxonHit(nm, qn.name)
	h.IsApprox = true
	h.NameStatusIsKnown = false
	h.EditDistance = dist
	h.Score = float64(shorter-dist) / float64(shorter)
	return h, true
}

func (r *run) distanceDecay(ctx context.Context, t taxonomy.Taxon) (float64, error) {
	if r.lica.IsZero() {
		return 1, nil
	}
	inside, err := taxonomy.IsPreferredDescendant(ctx, r.q.g, t, r.lica)
	if err != nil || inside {
		return 1, err
	}
	d, err := taxonomy.InternodalDistance(ctx, r.q.g, t, r.lica)
	if err != nil {
		return 0, err
	}
	return taxonomy.DistanceDecay(d), nil
}

// deprecatedExact finds deprecated taxa with the name, if requested.
func (r *run) deprecatedExact(
	ctx context.Context,
	qn queryName,
	score float64,
) ([]Hit, error) {
	if !r.q.includeDeprecated {
		return nil, nil
	}
	nms, err := r.q.g.ExactMatch(
		ctx, taxonomy.AllLife, taxonomy.Deprecated, qn.name,
	)
	if err != nil {
		return nil, err
	}
	res := make([]Hit, 0, len(nms))
	for _, nm := range nms {
		h := NewTaxonHit(nm, qn.name)
		h.Score = score
		res = append(res, h)
	}
	return res, nil
}

// runAdapters asks external sources about unmatched names. Failures are
// logged and ignored.
func (r *run) runAdapters(ctx context.Context) {
	for _, a := range r.q.adapters {
		ids := r.res.UnmatchedIDs()
		if len(ids) == 0 {
			return
		}
		names := make([]QueryName, 0, len(ids))
		for _, id := range ids {
			names = append(names, QueryName{ID: id, Name: r.res.Name(id)})
		}

		found, err := a.Match(ctx, names)
		if err != nil {
			err = AdapterError(a.Name(), err)
			slog.Warn("External source failed", "source", a.Name(), "error", err)
			continue
		}
		for _, id := range ids {
			hits := found[id]
			if len(hits) == 0 {
				continue
			}
			ms := r.res.matchSet(id)
			for _, h := range hits {
				ms.Add(h)
			}
			r.res.setMatches(id, ms)
		}
	}
}

func (r *run) finish(ctx context.Context) error {
	r.res.contextName = r.context.Name
	r.res.governingCode = r.context.Code.String()
	meta, err := r.q.g.Metadata(ctx)
	if err != nil {
		return err
	}
	maps.Copy(r.res.metadata, meta)
	return nil
}

// genusOfSpName returns "Genus" for "Genus sp." and "Genus sp" names.
func genusOfSpName(name string) (string, bool) {
	words := strings.Fields(name)
	if len(words) < 2 {
		return "", false
	}
	last := strings.ToLower(words[len(words)-1])
	if last != "sp." && last != "sp" {
		return "", false
	}
	return strings.Join(words[:len(words)-1], " "), true
}

func distinctTaxa(nms []taxonomy.NameMatch) int {
	ids := make(map[int64]struct{}, len(nms))
	for _, nm := range nms {
		ids[nm.ID] = struct{}{}
	}
	return len(ids)
}
