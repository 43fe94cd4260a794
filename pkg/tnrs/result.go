package tnrs

import (
	"maps"
	"slices"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntnrs/pkg/taxonomy"
)

// QueryName is a name string with an opaque id supplied by the caller.
type QueryName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NameResult pairs a query id with matches found for it.
type NameResult struct {
	id      string
	name    string
	matches *MatchSet
}

// NewNameResult creates a result for a query name.
func NewNameResult(id, name string, ms *MatchSet) *NameResult {
	if ms == nil {
		ms = NewMatchSet()
	}
	return &NameResult{id: id, name: name, matches: ms}
}

func (nr *NameResult) ID() string         { return nr.id }
func (nr *NameResult) Name() string       { return nr.name }
func (nr *NameResult) Matches() *MatchSet { return nr.matches }

// ContextResult is the outcome of context inference.
type ContextResult struct {
	Context taxonomy.Context `json:"context"`
	// AmbiguousNames are names without a single exact match in the whole
	// taxonomy.
	AmbiguousNames []string `json:"ambiguousNames"`
}

// Results is the response of a MultiNameQuery. It is filled only by the
// query and must be treated as read-only by callers.
type Results struct {
	queried map[string]string
	order   []string

	results     map[string]*NameResult
	resultOrder []string

	direct      map[string]string
	directOrder []string

	unmatched      map[string]string
	unmatchedOrder []string

	contextName         string
	governingCode       string
	minScore            float64
	includesDubious     bool
	includesDeprecated  bool
	includesApproximate bool
	metadata            map[string]any
}

func newResults() *Results {
	return &Results{
		queried:   make(map[string]string),
		results:   make(map[string]*NameResult),
		direct:    make(map[string]string),
		unmatched: make(map[string]string),
		metadata:  make(map[string]any),
	}
}

func (r *Results) addQueried(id, name string) {
	if _, ok := r.queried[id]; ok {
		return
	}
	r.queried[id] = name
	r.order = append(r.order, id)
}

// matchSet returns the match set of a query id, creating an empty one
// if needed. The result is registered only after it gets matches.
func (r *Results) matchSet(id string) *MatchSet {
	if nr, ok := r.results[id]; ok {
		return nr.matches
	}
	return NewMatchSet()
}

func (r *Results) setMatches(id string, ms *MatchSet) {
	if ms.Len() == 0 {
		return
	}
	if _, ok := r.results[id]; ok {
		return
	}
	r.results[id] = NewNameResult(id, r.queried[id], ms)
	r.resultOrder = append(r.resultOrder, id)
	r.removeUnmatched(id)
}

func (r *Results) addDirect(id string) {
	if _, ok := r.direct[id]; ok {
		return
	}
	r.direct[id] = r.queried[id]
	r.directOrder = append(r.directOrder, id)
}

func (r *Results) addUnmatched(id string) {
	if _, ok := r.unmatched[id]; ok {
		return
	}
	if _, ok := r.results[id]; ok {
		return
	}
	r.unmatched[id] = r.queried[id]
	r.unmatchedOrder = append(r.unmatchedOrder, id)
}

func (r *Results) removeUnmatched(id string) {
	if _, ok := r.unmatched[id]; !ok {
		return
	}
	delete(r.unmatched, id)
	r.unmatchedOrder = slices.DeleteFunc(r.unmatchedOrder, func(s string) bool {
		return s == id
	})
}

// Get returns the result for a query id.
func (r *Results) Get(id string) (*NameResult, bool) {
	nr, ok := r.results[id]
	return nr, ok
}

// Name returns the query name string of an id.
func (r *Results) Name(id string) string {
	return r.queried[id]
}

// IDs returns all queried ids in input order.
func (r *Results) IDs() []string {
	return slices.Clone(r.order)
}

// MatchedIDs returns ids that have matches, in the order they were
// matched.
func (r *Results) MatchedIDs() []string {
	return slices.Clone(r.resultOrder)
}

// DirectMatchIDs returns ids that have an unambiguous exact match.
func (r *Results) DirectMatchIDs() []string {
	return slices.Clone(r.directOrder)
}

// UnmatchedIDs returns ids without any matches.
func (r *Results) UnmatchedIDs() []string {
	return slices.Clone(r.unmatchedOrder)
}

// Len returns the number of matched names.
func (r *Results) Len() int {
	return len(r.results)
}

func (r *Results) ContextName() string       { return r.contextName }
func (r *Results) GoverningCode() string     { return r.governingCode }
func (r *Results) MinScore() float64         { return r.minScore }
func (r *Results) IncludesDubious() bool     { return r.includesDubious }
func (r *Results) IncludesDeprecated() bool  { return r.includesDeprecated }
func (r *Results) IncludesApproximate() bool { return r.includesApproximate }

// TaxonomyMetadata returns a copy of metadata of the queried taxonomy.
func (r *Results) TaxonomyMetadata() map[string]any {
	return maps.Clone(r.metadata)
}

// SingleMatch returns the only match of the results. It fails with
// MultipleMatchError when there is more than one name or match, and with
// NoMatchError when nothing matched.
func (r *Results) SingleMatch() (Match, error) {
	if len(r.results) == 0 {
		return Match{}, NoMatchError()
	}
	first := r.results[r.resultOrder[0]].matches
	if len(r.results) > 1 || first.Len() > 1 {
		return Match{}, MultipleMatchError(len(r.results), first.Len())
	}
	if first.Len() == 0 {
		return Match{}, NoMatchError()
	}
	return first.At(0), nil
}

type nameResultJSON struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Matches *MatchSet `json:"matches"`
}

type resultsJSON struct {
	GoverningCode       string           `json:"governingCode"`
	Context             string           `json:"context"`
	IncludesApproximate bool             `json:"includesApproximateMatches"`
	IncludesDeprecated  bool             `json:"includesDeprecatedTaxa"`
	IncludesDubious     bool             `json:"includesDubiousNames"`
	MinScore            float64          `json:"minScore"`
	DirectMatchIDs      []string         `json:"unambiguousNameIds"`
	MatchedIDs          []string         `json:"matchedNameIds"`
	UnmatchedIDs        []string         `json:"unmatchedNameIds"`
	Results             []nameResultJSON `json:"results"`
	Taxonomy            map[string]any   `json:"taxonomy,omitempty"`
}

// MarshalJSON renders the results with their matches.
func (r *Results) MarshalJSON() ([]byte, error) {
	res := resultsJSON{
		GoverningCode:       r.governingCode,
		Context:             r.contextName,
		IncludesApproximate: r.includesApproximate,
		IncludesDeprecated:  r.includesDeprecated,
		IncludesDubious:     r.includesDubious,
		MinScore:            r.minScore,
		DirectMatchIDs:      nonNil(r.directOrder),
		MatchedIDs:          nonNil(r.resultOrder),
		UnmatchedIDs:        nonNil(r.unmatchedOrder),
		Results:             make([]nameResultJSON, 0, len(r.resultOrder)),
		Taxonomy:            r.metadata,
	}
	for _, id := range r.resultOrder {
		nr := r.results[id]
		res.Results = append(res.Results, nameResultJSON{
			ID: id, Name: nr.name, Matches: nr.matches,
		})
	}
	return gnfmt.GNjson{}.Encode(res)
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
