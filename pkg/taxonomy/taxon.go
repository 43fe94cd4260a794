// Package taxonomy contains the taxonomy data model, the abstract access
// to a taxonomy graph and the algorithms that work on the preferred
// hierarchy: least inclusive common ancestors, induced subtrees and
// taxonomic contexts.
//
// The package is pure. Storage lives behind the Graph interface and is
// implemented by internal packages.
package taxonomy

import (
	"strings"
)

// Taxon is a node of the preferred hierarchy. It is a read-only value;
// the package never mutates taxonomy content.
type Taxon struct {
	// ID is a stable identifier of the taxon (OTT id for OTT taxonomies).
	ID int64 `json:"id" yaml:"id"`

	// ParentID is the id of the preferred parent, 0 for the root.
	ParentID int64 `json:"parentId,omitempty" yaml:"parent_id"`

	// Name is the display name of the taxon.
	Name string `json:"name" yaml:"name"`

	// UniqueName disambiguates homonyms, for example
	// "Rosa (genus in kingdom Archaeplastida)". Can be empty.
	UniqueName string `json:"uniqueName,omitempty" yaml:"unique_name"`

	// Rank is a taxonomic rank like "species" or "no rank".
	Rank string `json:"rank" yaml:"rank"`

	// Code is the governing nomenclatural code.
	Code Nomenclature `json:"nomenclaturalCode" yaml:"code"`

	// Flags are status flags that decide membership in preferred
	// indexes.
	Flags Flags `json:"flags,omitempty" yaml:"flags"`

	// IsDeprecated is true for taxa that were removed from the current
	// release of the taxonomy.
	IsDeprecated bool `json:"isDeprecated,omitempty" yaml:"deprecated"`
}

// IsZero is true for an empty Taxon.
func (t Taxon) IsZero() bool {
	return t.ID == 0 && t.Name == ""
}

// IsRoot is true when the taxon has no preferred parent.
func (t Taxon) IsRoot() bool {
	return t.ParentID == 0
}

// DisplayName returns UniqueName when it is set, Name otherwise.
func (t Taxon) DisplayName() string {
	if t.UniqueName != "" {
		return t.UniqueName
	}
	return t.Name
}

// IsDubious is true if the taxon carries flags that exclude it from
// preferred indexes.
func (t Taxon) IsDubious() bool {
	return t.Flags.Suppressed()
}

// IsSpecies is true for species and infraspecific ranks.
func (t Taxon) IsSpecies() bool {
	return IsSpeciesRank(t.Rank)
}

// IsHigherTaxon is true for ranks above species.
func (t Taxon) IsHigherTaxon() bool {
	return !IsSpeciesRank(t.Rank)
}

// IsGenus is true for the genus rank.
func (t Taxon) IsGenus() bool {
	return strings.EqualFold(t.Rank, "genus")
}

// IsSpeciesRank is true for "species", "subspecies", "variety" and
// "forma".
func IsSpeciesRank(rank string) bool {
	switch strings.ToLower(rank) {
	case "species", "subspecies", "variety", "forma":
		return true
	}
	return false
}

// Synonym is an alternative name of a taxon. Synonyms have no
// children and are not taxa.
type Synonym struct {
	TaxonID int64  `json:"taxonId" yaml:"taxon_id"`
	Name    string `json:"name" yaml:"name"`
	// Type is the kind of synonymy, for example "synonym",
	// "misspelling" or "includes".
	Type string `json:"type,omitempty" yaml:"type"`
}

// Source is a complete taxonomy ready to be loaded into a Graph
// implementation.
type Source struct {
	Taxa       []Taxon        `yaml:"taxa"`
	Synonyms   []Synonym      `yaml:"synonyms"`
	Deprecated []Taxon        `yaml:"deprecated"`
	Metadata   map[string]any `yaml:"metadata"`
}
