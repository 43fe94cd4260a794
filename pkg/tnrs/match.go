package tnrs

import (
	"fmt"
	"maps"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntnrs/pkg/taxonomy"
)

// Match is a frozen Hit. It exposes only getters.
type Match struct {
	taxon             taxonomy.Taxon
	matchedName       string
	searchString      string
	sourceName        string
	nomenCode         string
	rank              string
	isHomonym         bool
	isPerfectMatch    bool
	isApprox          bool
	isSynonym         bool
	nameStatusIsKnown bool
	editDistance      int
	score             float64
	otherData         map[string]string
}

func (m Match) Taxon() taxonomy.Taxon   { return m.taxon }
func (m Match) ID() int64               { return m.taxon.ID }
func (m Match) ParentID() int64         { return m.taxon.ParentID }
func (m Match) MatchedName() string     { return m.matchedName }
func (m Match) SearchString() string    { return m.searchString }
func (m Match) SourceName() string      { return m.sourceName }
func (m Match) NomenCode() string       { return m.nomenCode }
func (m Match) Rank() string            { return m.rank }
func (m Match) IsHomonym() bool         { return m.isHomonym }
func (m Match) IsPerfectMatch() bool    { return m.isPerfectMatch }
func (m Match) IsApproximate() bool     { return m.isApprox }
func (m Match) IsSynonym() bool         { return m.isSynonym }
func (m Match) NameStatusIsKnown() bool { return m.nameStatusIsKnown }
func (m Match) EditDistance() int       { return m.editDistance }
func (m Match) Score() float64          { return m.score }
func (m Match) IsDeprecated() bool      { return m.taxon.IsDeprecated }
func (m Match) IsDubious() bool         { return m.taxon.IsDubious() }

// OtherData returns a copy of source-specific data.
func (m Match) OtherData() map[string]string {
	return maps.Clone(m.otherData)
}

// IsHigherTaxon is true when the rank is not species, subspecies,
// variety or forma.
func (m Match) IsHigherTaxon() bool {
	return !taxonomy.IsSpeciesRank(m.rank)
}

// UniqueName returns the unique name of the matched taxon, or its name
// when the unique name is empty.
func (m Match) UniqueName() string {
	return m.taxon.DisplayName()
}

// MatchType describes the kind of the match in words.
func (m Match) MatchType() string {
	if m.isPerfectMatch {
		return "unambiguous match to known taxon"
	}
	res := "exact match"
	if m.isApprox {
		res = "approximate match"
	}
	if !m.nameStatusIsKnown {
		return res + "; name status unknown"
	}
	if m.isSynonym {
		res += " to known synonym"
	} else {
		res += " to known taxon"
	}
	if m.isHomonym {
		res += "; also a homonym"
	}
	return res
}

func (m Match) String() string {
	return fmt.Sprintf(
		"Query '%s' matched to %s (id=%d), score %g; (%s)",
		m.searchString, m.taxon.Name, m.taxon.ID, m.score, m.MatchType(),
	)
}

type matchJSON struct {
	ID                int64             `json:"ottId"`
	ParentID          int64             `json:"parentOttId,omitempty"`
	MatchedName       string            `json:"matchedName"`
	UniqueName        string            `json:"uniqueName"`
	SearchString      string            `json:"searchString"`
	Rank              string            `json:"rank"`
	NomenCode         string            `json:"nomenclatureCode"`
	SourceName        string            `json:"source"`
	MatchType         string            `json:"matchType"`
	Score             float64           `json:"score"`
	EditDistance      int               `json:"editDistance,omitempty"`
	IsApproximate     bool              `json:"isApproximateMatch"`
	IsSynonym         bool              `json:"isSynonym"`
	IsHomonym         bool              `json:"isHomonym"`
	IsPerfectMatch    bool              `json:"isPerfectMatch"`
	NameStatusIsKnown bool              `json:"nameStatusIsKnown"`
	IsDeprecated      bool              `json:"isDeprecated"`
	IsDubious         bool              `json:"isDubious"`
	IsHigherTaxon     bool              `json:"isHigherTaxon"`
	Flags             taxonomy.Flags    `json:"flags,omitempty"`
	OtherData         map[string]string `json:"otherData,omitempty"`
}

// MarshalJSON exposes getters of the match as a JSON object.
func (m Match) MarshalJSON() ([]byte, error) {
	return gnfmt.GNjson{}.Encode(matchJSON{
		ID:                m.ID(),
		ParentID:          m.ParentID(),
		MatchedName:       m.matchedName,
		UniqueName:        m.UniqueName(),
		SearchString:      m.searchString,
		Rank:              m.rank,
		NomenCode:         m.nomenCode,
		SourceName:        m.sourceName,
		MatchType:         m.MatchType(),
		Score:             m.score,
		EditDistance:      m.editDistance,
		IsApproximate:     m.isApprox,
		IsSynonym:         m.isSynonym,
		IsHomonym:         m.isHomonym,
		IsPerfectMatch:    m.isPerfectMatch,
		NameStatusIsKnown: m.nameStatusIsKnown,
		IsDeprecated:      m.IsDeprecated(),
		IsDubious:         m.IsDubious(),
		IsHigherTaxon:     m.IsHigherTaxon(),
		Flags:             m.taxon.Flags,
		OtherData:         m.otherData,
	})
}
