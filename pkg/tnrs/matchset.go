package tnrs

import (
	"cmp"
	"slices"

	"github.com/gnames/gnfmt"
)

// MatchSet keeps matches of one query string in insertion order.
type MatchSet struct {
	matches []Match
}

// NewMatchSet creates an empty MatchSet.
func NewMatchSet() *MatchSet {
	return &MatchSet{}
}

// Add freezes the hit and appends the resulting match to the set.
func (ms *MatchSet) Add(h Hit) Match {
	m := h.freeze()
	ms.matches = append(ms.matches, m)
	return m
}

// Len returns the number of matches.
func (ms *MatchSet) Len() int {
	if ms == nil {
		return 0
	}
	return len(ms.matches)
}

// At returns the i-th match.
func (ms *MatchSet) At(i int) Match {
	return ms.matches[i]
}

// Matches returns a copy of the matches.
func (ms *MatchSet) Matches() []Match {
	if ms == nil {
		return nil
	}
	return slices.Clone(ms.matches)
}

// Has is true if a match to the taxon with the given id exists.
func (ms *MatchSet) Has(id int64) bool {
	return slices.ContainsFunc(ms.matches, func(m Match) bool {
		return m.ID() == id
	})
}

// SortForAutocomplete puts higher taxa first, then orders matches
// alphabetically by unique name.
func (ms *MatchSet) SortForAutocomplete() {
	slices.SortStableFunc(ms.matches, func(a, b Match) int {
		if a.IsHigherTaxon() != b.IsHigherTaxon() {
			if a.IsHigherTaxon() {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.UniqueName(), b.UniqueName())
	})
}

// MarshalJSON renders the set as a JSON array of matches.
func (ms *MatchSet) MarshalJSON() ([]byte, error) {
	res := ms.Matches()
	if res == nil {
		res = []Match{}
	}
	return gnfmt.GNjson{}.Encode(res)
}
