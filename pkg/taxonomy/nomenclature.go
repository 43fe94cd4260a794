package taxonomy

import "strings"

// Nomenclature is a code of nomenclature governing names of a taxon.
type Nomenclature int

const (
	// Undefined means the governing code is unclear, nonexistent, or
	// there are multiple codes.
	Undefined Nomenclature = iota
	// ICN is the code for algae, fungi, and plants.
	ICN
	// ICNP is the code for prokaryotes.
	ICNP
	// ICZN is the code for animals.
	ICZN
)

var nomenclatureData = map[Nomenclature]struct {
	code, description string
}{
	Undefined: {"undefined", "governing code unclear, nonexistent, or multiple codes"},
	ICN:       {"ICN", "plants, fungi, and some protists"},
	ICNP:      {"ICNP", "bacteria"},
	ICZN:      {"ICZN", "animals"},
}

// String returns the short code name.
func (n Nomenclature) String() string {
	if d, ok := nomenclatureData[n]; ok {
		return d.code
	}
	return nomenclatureData[Undefined].code
}

// Description tells which organisms the code governs.
func (n Nomenclature) Description() string {
	if d, ok := nomenclatureData[n]; ok {
		return d.description
	}
	return nomenclatureData[Undefined].description
}

// NewNomenclature converts a code name to Nomenclature. Unknown values
// and historical names of the botanical and bacterial codes are
// handled; anything else is Undefined.
func NewNomenclature(s string) Nomenclature {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ICN", "ICBN", "BOTANICAL":
		return ICN
	case "ICNP", "ICNB", "BACTERIAL":
		return ICNP
	case "ICZN", "ZOOLOGICAL":
		return ICZN
	default:
		return Undefined
	}
}

// MarshalText implements encoding.TextMarshaler.
func (n Nomenclature) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Nomenclature) UnmarshalText(b []byte) error {
	*n = NewNomenclature(string(b))
	return nil
}
