package taxonomy

// IndexKind names one of the name indexes a Graph can search.
type IndexKind int

const (
	PrefName IndexKind = iota
	PrefSynonym
	PrefNameOrSynonym
	PrefNameSpecies
	PrefNameGenera
	PrefNameHigher
	PrefNameOrSynonymHigher
	Name
	// SynonymKind indexes synonyms of all taxa, dubious ones included.
	SynonymKind
	NameOrSynonym
	Deprecated
)

// SpeciesByGenusPrefix is the storage prefix of the genus to species
// lookup.
const SpeciesByGenusPrefix = "prefSpeciesNodesByGenus"

var indexPrefixes = map[IndexKind]string{
	PrefName:                "prefTaxNodesByName",
	PrefSynonym:             "prefTaxNodesBySyn",
	PrefNameOrSynonym:       "prefTaxNodesByNameOrSyn",
	PrefNameSpecies:         "prefTaxNodesByNameSpecies",
	PrefNameGenera:          "prefTaxNodesByNameGenera",
	PrefNameHigher:          "prefTaxNodesByNameHigher",
	PrefNameOrSynonymHigher: "prefTaxNodesByNameOrSynHigher",
	Name:                    "taxNodesByName",
	SynonymKind:             "taxNodesBySyn",
	NameOrSynonym:           "taxNodesByNameOrSyn",
	Deprecated:              "deprecatedTaxa",
}

// AllIndexKinds lists every index kind.
var AllIndexKinds = []IndexKind{
	PrefName, PrefSynonym, PrefNameOrSynonym, PrefNameSpecies,
	PrefNameGenera, PrefNameHigher, PrefNameOrSynonymHigher,
	Name, SynonymKind, NameOrSynonym, Deprecated,
}

// Prefix returns the storage prefix of the index.
func (k IndexKind) Prefix() string {
	return indexPrefixes[k]
}

func (k IndexKind) String() string {
	if p, ok := indexPrefixes[k]; ok {
		return p
	}
	return "unknown"
}

// IndexName returns the name of the index scoped to a context.
// Deprecated taxa are never scoped.
func (k IndexKind) IndexName(c Context) string {
	if k == Deprecated {
		return k.Prefix()
	}
	return k.Prefix() + c.Suffix
}

// IsPreferred is true for indexes that exclude dubious taxa.
func (k IndexKind) IsPreferred() bool {
	switch k {
	case Name, SynonymKind, NameOrSynonym, Deprecated:
		return false
	}
	return true
}

// SearchesNames is true when the index contains valid names.
func (k IndexKind) SearchesNames() bool {
	return k != PrefSynonym && k != SynonymKind
}

// SearchesSynonyms is true when the index contains synonyms.
func (k IndexKind) SearchesSynonyms() bool {
	switch k {
	case PrefSynonym, PrefNameOrSynonym, PrefNameOrSynonymHigher,
		SynonymKind, NameOrSynonym:
		return true
	}
	return false
}

// Admits tells if a taxon belongs to the index by its rank and flags.
// Context membership and deprecation are checked by the graph.
func (k IndexKind) Admits(t Taxon) bool {
	if k == Deprecated {
		return t.IsDeprecated
	}
	if t.IsDeprecated {
		return false
	}
	if k.IsPreferred() && t.IsDubious() {
		return false
	}
	switch k {
	case PrefNameSpecies:
		return t.IsSpecies()
	case PrefNameGenera:
		return t.IsGenus()
	case PrefNameHigher, PrefNameOrSynonymHigher:
		return t.IsHigherTaxon()
	}
	return true
}

// ForDubious swaps a preferred index kind for its counterpart that
// includes dubious taxa.
func (k IndexKind) ForDubious() IndexKind {
	switch k {
	case PrefName:
		return Name
	case PrefSynonym:
		return SynonymKind
	case PrefNameOrSynonym:
		return NameOrSynonym
	}
	return k
}
