package iostore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/internal/iodb"
	"github.com/gnames/gntnrs/internal/ioindex"
	"github.com/gnames/gntnrs/internal/iopopulate"
	"github.com/gnames/gntnrs/internal/ioschema"
	"github.com/gnames/gntnrs/internal/iostore"
	"github.com/gnames/gntnrs/internal/iotesting"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/errcode"
	"github.com/gnames/gntnrs/pkg/taxonomy"
	"github.com/gnames/gntnrs/pkg/tnrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openStore populates a SQL store with the test taxonomy and opens it.
func openStore(
	t *testing.T,
	cfg *config.Config,
	opts ...iostore.Option,
) iostore.Store {
	t.Helper()
	ctx := context.Background()
	op, err := iodb.New(cfg.Taxonomy.Backend)
	require.Nil(t, err)
	require.Nil(t, op.Connect(ctx, cfg))
	t.Cleanup(func() { op.Close() })

	require.Nil(t, op.DropAllTables(ctx))
	require.Nil(t, ioschema.NewManager(op).Create(ctx))
	require.Nil(t, iopopulate.New(cfg, op).Populate(ctx, iotesting.Source(t)))

	s, err := iostore.New(ctx, op, opts...)
	require.Nil(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func ids(nms []taxonomy.NameMatch) []int64 {
	res := make([]int64, len(nms))
	for i := range nms {
		res[i] = nms[i].ID
	}
	return res
}

// sameAsMemory compares name queries and hierarchy of a store with the
// in-memory graph.
func sameAsMemory(t *testing.T, s taxonomy.Graph) {
	ctx := context.Background()
	mem := iotesting.Graph(t)

	names := []string{
		"Rosa", "Homo", "Aster alpinus", "Canis lupus", "Dupla dupla",
		"Homo neanderthalensis", "Hiddenia", "Homo sapien", "Rosa canima",
		"Lobelia", "Xeno",
	}
	for _, c := range taxonomy.AllContexts() {
		for _, k := range taxonomy.AllIndexKinds {
			for _, n := range names {
				msg := c.Name + " " + k.String() + " " + n

				exp, err := mem.ExactMatch(ctx, c, k, n)
				require.Nil(t, err)
				got, err := s.ExactMatch(ctx, c, k, n)
				require.Nil(t, err)
				assert.Equal(t, exp, got, msg)

				exp, err = mem.PrefixMatch(ctx, c, k, n[:3])
				require.Nil(t, err)
				got, err = s.PrefixMatch(ctx, c, k, n[:3])
				require.Nil(t, err)
				assert.ElementsMatch(t, ids(exp), ids(got), msg)

				exp, err = mem.FuzzyMatch(ctx, c, k, n, 0.7)
				require.Nil(t, err)
				got, err = s.FuzzyMatch(ctx, c, k, n, 0.7)
				require.Nil(t, err)
				assert.ElementsMatch(t, ids(exp), ids(got), msg)
			}
		}
	}

	for _, c := range taxonomy.AllContexts() {
		exp, expOK, err := mem.ContextAnchor(ctx, c)
		require.Nil(t, err)
		got, ok, err := s.ContextAnchor(ctx, c)
		require.Nil(t, err)
		assert.Equal(t, expOK, ok, c.Name)
		assert.Equal(t, exp, got, c.Name)
	}

	for _, tx := range mem.Taxa() {
		got, err := s.TaxonByID(ctx, tx.ID)
		require.Nil(t, err)
		assert.Equal(t, tx, got)

		expKids, err := mem.Children(ctx, tx)
		require.Nil(t, err)
		kids, err := s.Children(ctx, tx)
		require.Nil(t, err)
		assert.Equal(t, expKids, kids, tx.Name)

		expDesc, err := mem.DescendantIDs(ctx, tx)
		require.Nil(t, err)
		desc, err := s.DescendantIDs(ctx, tx)
		require.Nil(t, err)
		assert.Equal(t, expDesc, desc, tx.Name)
	}
}

func TestSQLite(t *testing.T) {
	s := openStore(t, iotesting.SQLiteConfig(t))
	sameAsMemory(t, s)
}

func TestSQLiteBleve(t *testing.T) {
	s := openStore(t, iotesting.SQLiteConfig(t),
		iostore.OptNameIndex(ioindex.New("")),
	)
	sameAsMemory(t, s)
}

func TestPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	s := openStore(t, iotesting.PGConfig())
	sameAsMemory(t, s)
}

func TestHierarchy(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	s := openStore(t, iotesting.SQLiteConfig(t))

	root, err := s.Root(ctx)
	assert.Nil(err)
	assert.Equal(iotesting.LifeID, root.ID)
	_, ok, err := s.Parent(ctx, root, true)
	assert.Nil(err)
	assert.False(ok)

	hs, err := s.TaxonByID(ctx, iotesting.HomoSapiensID)
	assert.Nil(err)
	assert.Equal(taxonomy.ICZN, hs.Code)
	p, ok, err := s.Parent(ctx, hs, true)
	assert.Nil(err)
	assert.True(ok)
	assert.Equal(iotesting.HomoID, p.ID)

	dep, err := s.TaxonByID(ctx, iotesting.NeanderID)
	assert.Nil(err)
	assert.True(dep.IsDeprecated)

	_, err = s.TaxonByID(ctx, 42)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(errcode.TaxonNotFoundError, gnErr.Code)

	aster, err := s.TaxonByID(ctx, iotesting.AsterID)
	assert.Nil(err)
	plants, err := taxonomy.ContextByName("Flowering plants")
	assert.Nil(err)
	sp, err := s.SpeciesByGenus(ctx, plants, aster)
	assert.Nil(err)
	assert.Len(sp, 2)
	mammals, err := taxonomy.ContextByName("Mammals")
	assert.Nil(err)
	sp, err = s.SpeciesByGenus(ctx, mammals, aster)
	assert.Nil(err)
	assert.Empty(sp)

	meta, err := s.Metadata(ctx)
	assert.Nil(err)
	assert.Equal("1.0", meta["version"])
	assert.Equal(float64(len(iotesting.Source(t).Taxa)), meta["taxa"])
	assert.Equal("sqlite", meta["backend"])
}

func TestMultiNameQuery(t *testing.T) {
	assert := assert.New(t)
	s := openStore(t, iotesting.SQLiteConfig(t))
	q := tnrs.NewMultiNameQuery(s)
	res, err := q.Run(context.Background(), []tnrs.QueryName{
		{ID: "a", Name: "Rosa canina"},
		{ID: "b", Name: "Rosa"},
		{ID: "c", Name: "Rosa lutetiana"},
	}, nil)
	require.Nil(t, err)
	assert.Equal("Flowering plants", res.ContextName())
	assert.ElementsMatch([]string{"a", "b"}, res.DirectMatchIDs())
	assert.Empty(res.UnmatchedIDs())
}

func TestEmptyStore(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.SQLiteConfig(t)
	op := iodb.NewSQLiteOperator()
	require.Nil(t, op.Connect(ctx, cfg))
	defer op.Close()
	require.Nil(t, ioschema.NewManager(op).Create(ctx))

	_, err := iostore.New(ctx, op)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DBEmptyDatabaseError, gnErr.Code)
}
