package iotesting

import (
	"bytes"
	_ "embed"
	"testing"

	"github.com/gnames/gntnrs/internal/iograph"
	"github.com/gnames/gntnrs/internal/iotaxonomy"
	"github.com/gnames/gntnrs/pkg/taxonomy"
	"github.com/stretchr/testify/require"
)

//go:embed data/taxonomy.yaml
var taxonomyYAML []byte

// Ids of taxa in the test taxonomy.
const (
	LifeID          int64 = 805080
	BacteriaID      int64 = 844192
	EukaryotaID     int64 = 304358
	MetazoaID       int64 = 691846
	MammaliaID      int64 = 244265
	HomoID          int64 = 770309
	HomoSapiensID   int64 = 770315
	HomoErectusID   int64 = 1000010
	CanisID         int64 = 1000011
	CanisLupusID    int64 = 1000012
	AvesID          int64 = 81461
	PasserDomID     int64 = 1000021
	RosaInsectID    int64 = 1000030
	AusBusID        int64 = 1000032
	LobeliaInsectID int64 = 1000033
	XenoInsectID    int64 = 1000036
	LobeliaPlantID  int64 = 1086294
	IncertaeID      int64 = 1000059
	CusDusID        int64 = 1000061
	AmanitaMuscID   int64 = 1000041
	MagnoliophytaID int64 = 99252
	RosaPlantID     int64 = 1000050
	RosaCaninaID    int64 = 1000051
	AsterID         int64 = 409712
	AsterAlpinusID  int64 = 1000053
	HiddeniaID      int64 = 1000055
	NeanderID       int64 = 1000090
)

// Source returns the test taxonomy.
func Source(t *testing.T) taxonomy.Source {
	t.Helper()
	src, err := iotaxonomy.ReadYAML(bytes.NewReader(taxonomyYAML), "taxonomy.yaml")
	require.Nil(t, err)
	return src
}

// Graph returns an in-memory graph of the test taxonomy. It is closed
// when the test ends.
func Graph(t *testing.T, opts ...iograph.Option) iograph.Graph {
	t.Helper()
	g, err := iograph.New(Source(t), opts...)
	require.Nil(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}
