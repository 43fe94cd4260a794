// Package tnrs is the taxonomic name resolution engine. It matches name
// strings against a taxonomy.Graph in a cascade of exact, synonym and
// fuzzy stages, infers a taxonomic context for a batch of names and
// answers autocomplete queries.
package tnrs

import (
	"maps"

	"github.com/gnames/gntnrs/pkg/taxonomy"
)

const (
	// PerfectScore is the score of exact matches.
	PerfectScore = 1.0

	// GenusSpScore is the score of "Genus sp." names matched to a genus.
	GenusSpScore = PerfectScore * 0.99

	// DefaultMinScore is the lowest score a fuzzy match can have.
	DefaultMinScore = 0.01

	// SourceOTT is the source name of matches found in the local
	// taxonomy.
	SourceOTT = "ott"

	// UndeterminedCode is the nomenclatural code of matches with unknown
	// code.
	UndeterminedCode = "undetermined"
)

// Hit is a mutable draft of a match. It becomes an immutable Match when
// added to a MatchSet.
type Hit struct {
	Taxon        taxonomy.Taxon
	MatchedName  string
	SearchString string
	SourceName   string
	NomenCode    string
	Rank         string

	IsHomonym      bool
	IsPerfectMatch bool
	IsApprox       bool
	IsSynonym      bool

	// NameStatusIsKnown is false when it is unknown if the matched
	// name is a homonym or a synonym, as it happens with fuzzy matches.
	NameStatusIsKnown bool

	EditDistance int
	Score        float64
	OtherData    map[string]string
}

// NewHit creates a Hit with default values.
func NewHit() Hit {
	return Hit{
		SourceName:        SourceOTT,
		NomenCode:         UndeterminedCode,
		NameStatusIsKnown: true,
		Score:             -1,
	}
}

// NewTaxonHit creates a Hit for a taxon found by a name index.
func NewTaxonHit(nm taxonomy.NameMatch, search string) Hit {
	h := NewHit()
	h.Taxon = nm.Taxon
	h.MatchedName = nm.MatchedName
	if h.MatchedName == "" {
		h.MatchedName = nm.Name
	}
	h.SearchString = search
	h.Rank = nm.Rank
	h.IsSynonym = nm.IsSynonym
	if nm.Code != taxonomy.Undefined {
		h.NomenCode = nm.Code.String()
	}
	return h
}

func (h Hit) freeze() Match {
	m := Match{
		taxon:             h.Taxon,
		matchedName:       h.MatchedName,
		searchString:      h.SearchString,
		sourceName:        h.SourceName,
		nomenCode:         h.NomenCode,
		rank:              h.Rank,
		isHomonym:         h.IsHomonym,
		isPerfectMatch:    h.IsPerfectMatch,
		isApprox:          h.IsApprox,
		isSynonym:         h.IsSynonym,
		nameStatusIsKnown: h.NameStatusIsKnown,
		editDistance:      h.EditDistance,
		score:             h.Score,
	}
	if h.OtherData != nil {
		m.otherData = maps.Clone(h.OtherData)
	}
	return m
}
