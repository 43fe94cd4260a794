package taxonomy

import (
	"log/slog"
	"slices"
	"strings"
)

// Flag is a single taxon status flag.
type Flag uint32

// Flags is a set of Flag values.
type Flags uint32

const (
	NotOTU Flag = 1 << iota
	Barren
	Environmental
	EnvironmentalInherited
	Extinct
	ExtinctInherited
	MajorRankConflict
	MajorRankConflictInherited
	Unclassified
	UnclassifiedInherited
	Viral
	Hidden
	HiddenInherited
	Edited
	Hybrid
	IncertaeSedis
	IncertaeSedisInherited
	Infraspecific
	SiblingLower
	SiblingHigher
	Tattered
	TatteredInherited
	WasContainer
	Inconsistent
	Merged
	ForcedVisible
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{NotOTU, "not_otu"},
	{Barren, "barren"},
	{Environmental, "environmental"},
	{EnvironmentalInherited, "environmental_inherited"},
	{Extinct, "extinct"},
	{ExtinctInherited, "extinct_inherited"},
	{MajorRankConflict, "major_rank_conflict"},
	{MajorRankConflictInherited, "major_rank_conflict_inherited"},
	{Unclassified, "unclassified"},
	{UnclassifiedInherited, "unclassified_inherited"},
	{Viral, "viral"},
	{Hidden, "hidden"},
	{HiddenInherited, "hidden_inherited"},
	{Edited, "edited"},
	{Hybrid, "hybrid"},
	{IncertaeSedis, "incertae_sedis"},
	{IncertaeSedisInherited, "incertae_sedis_inherited"},
	{Infraspecific, "infraspecific"},
	{SiblingLower, "sibling_lower"},
	{SiblingHigher, "sibling_higher"},
	{Tattered, "tattered"},
	{TatteredInherited, "tattered_inherited"},
	{WasContainer, "was_container"},
	{Inconsistent, "inconsistent"},
	{Merged, "merged"},
	{ForcedVisible, "forced_visible"},
}

// aliases used by older OTT releases.
var flagAliases = map[string]Flag{
	"extinct_direct":             Extinct,
	"major_rank_conflict_direct": MajorRankConflict,
	"unclassified_direct":        Unclassified,
	"hidden_direct":              Hidden,
	"tattered_direct":            Tattered,
}

const suppressedMask = Flags(NotOTU | Barren | Environmental |
	EnvironmentalInherited | MajorRankConflict |
	MajorRankConflictInherited | Unclassified | UnclassifiedInherited |
	Viral | Hidden | HiddenInherited | IncertaeSedisInherited |
	Tattered | TatteredInherited | WasContainer)

// String returns the OTT name of the flag.
func (f Flag) String() string {
	for _, v := range flagNames {
		if v.flag == f {
			return v.name
		}
	}
	return ""
}

// NewFlags creates a set from individual flags.
func NewFlags(ff ...Flag) Flags {
	var res Flags
	for _, f := range ff {
		res = res.With(f)
	}
	return res
}

// ParseFlags reads the comma-separated flag column of OTT taxonomy
// files. Unknown flags are ignored.
func ParseFlags(s string) Flags {
	var res Flags
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if f, ok := flagByName(name); ok {
			res = res.With(f)
			continue
		}
		slog.Debug("Unknown taxon flag", "flag", name)
	}
	return res
}

func flagByName(name string) (Flag, bool) {
	if f, ok := flagAliases[name]; ok {
		return f, true
	}
	for _, v := range flagNames {
		if v.name == name {
			return v.flag, true
		}
	}
	return 0, false
}

// Has reports if f is in the set.
func (fs Flags) Has(f Flag) bool {
	return fs&Flags(f) != 0
}

// With returns a copy of the set with f added.
func (fs Flags) With(f Flag) Flags {
	return fs | Flags(f)
}

// Suppressed is true if the flags exclude a taxon from preferred
// indexes. ForcedVisible overrides all other flags.
func (fs Flags) Suppressed() bool {
	if fs.Has(ForcedVisible) {
		return false
	}
	return fs&suppressedMask != 0
}

// Names returns sorted OTT names of the flags in the set.
func (fs Flags) Names() []string {
	var res []string
	for _, v := range flagNames {
		if fs.Has(v.flag) {
			res = append(res, v.name)
		}
	}
	slices.Sort(res)
	return res
}

// String returns the comma-separated OTT representation.
func (fs Flags) String() string {
	return strings.Join(fs.Names(), ",")
}

// MarshalText renders flags the same way they appear in OTT files.
func (fs Flags) MarshalText() ([]byte, error) {
	return []byte(fs.String()), nil
}

// UnmarshalText parses OTT flags representation.
func (fs *Flags) UnmarshalText(b []byte) error {
	*fs = ParseFlags(string(b))
	return nil
}
