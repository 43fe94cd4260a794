package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/tnrs"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTaxonomy = "../internal/iotesting/data/taxonomy.yaml"

// TestCommands_Flags verifies commands and their flags.
func TestCommands_Flags(t *testing.T) {
	tests := []struct {
		msg   string
		cmd   *cobra.Command
		use   string
		flags map[string]string
	}{
		{
			"match", getMatchCmd(), "match",
			map[string]string{
				"input": "i", "context": "c", "fuzzy": "f", "dubious": "d",
				"deprecated": "D", "verifier": "v", "parse": "p",
			},
		},
		{
			"autocomplete", getAutocompleteCmd(), "autocomplete",
			map[string]string{"context": "c"},
		},
		{
			"infer-context", getInferContextCmd(), "infer-context",
			map[string]string{"input": "i"},
		},
		{"contexts", getContextsCmd(), "contexts", map[string]string{"json": "j"}},
		{"lica", getLICACmd(), "lica", map[string]string{}},
		{"subtree", getSubtreeCmd(), "subtree", map[string]string{"json": "j"}},
		{"create", getCreateCmd(), "create", map[string]string{"force": "f"}},
		{"migrate", getMigrateCmd(), "migrate", map[string]string{}},
		{
			"populate", getPopulateCmd(), "populate",
			map[string]string{"taxonomy": "t", "batch-size": "b"},
		},
		{"optimize", getOptimizeCmd(), "optimize", map[string]string{}},
	}

	for _, v := range tests {
		assert.Equal(t, v.use, v.cmd.Name(), v.msg)
		assert.NotEmpty(t, v.cmd.Short, v.msg)
		assert.Contains(t, v.cmd.Long, "Examples:", v.msg)
		assert.NotNil(t, v.cmd.RunE, v.msg)
		for name, short := range v.flags {
			f := v.cmd.Flags().Lookup(name)
			require.NotNil(t, f, v.msg+": "+name)
			assert.Equal(t, short, f.Shorthand, v.msg+": "+name)
		}
	}
}

// TestReadNames verifies names from arguments and files.
func TestReadNames(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "names.txt")
	err := os.WriteFile(path, []byte("Homo sapiens\n\n  Canis lupus  \n"), 0o644)
	require.Nil(t, err)

	names, err := readNames([]string{"Aster", " "}, "")
	require.Nil(t, err)
	assert.Equal([]string{"Aster"}, names)

	names, err = readNames([]string{"Aster"}, path)
	require.Nil(t, err)
	assert.Equal([]string{"Aster", "Homo sapiens", "Canis lupus"}, names)

	_, err = readNames(nil, filepath.Join(t.TempDir(), "none.txt"))
	assert.NotNil(err)
}

// TestParseIDs verifies taxon id arguments.
func TestParseIDs(t *testing.T) {
	assert := assert.New(t)
	ids, err := parseIDs([]string{"770315", "ott1000012"})
	require.Nil(t, err)
	assert.Equal([]int64{770315, 1000012}, ids)

	_, err = parseIDs([]string{"Homo"})
	assert.NotNil(err)
}

func TestBatchIDs(t *testing.T) {
	assert.Equal(t, []string{"250", "251", "252"}, batchIDs(250, 253))
}

func memoryConfig(t *testing.T, engine string) *config.Config {
	t.Helper()
	res := config.New()
	res.Update([]config.Option{
		config.OptTaxonomyBackend("memory"),
		config.OptTaxonomyDir(testTaxonomy),
		config.OptIndexEngine(engine),
		config.OptJobsNumber(2),
	})
	return res
}

// TestNewResolver verifies memory backends with both name indexes.
func TestNewResolver(t *testing.T) {
	for _, engine := range []string{"memory", "bleve"} {
		t.Run(engine, func(t *testing.T) {
			assert := assert.New(t)
			ctx := context.Background()
			r, closeFn, err := newResolver(ctx, memoryConfig(t, engine))
			require.Nil(t, err)
			defer closeFn()

			ms, err := r.Autocomplete(ctx, "aster a", "")
			require.Nil(t, err)
			assert.True(ms.Has(1000053))
			assert.True(ms.Has(1000054))

			lica, err := r.LICA(ctx, []int64{770315, 1000012})
			require.Nil(t, err)
			assert.Equal("Mammalia", lica.Name)
		})
	}
}

func TestNewResolverNoTaxonomy(t *testing.T) {
	c := config.New()
	_, _, err := newResolver(context.Background(), c)
	assert.NotNil(t, err)
}

func TestConnectMemory(t *testing.T) {
	_, err := connect(context.Background(), config.New())
	assert.NotNil(t, err)
}

// TestRunMatch runs the match command over the test taxonomy.
func TestRunMatch(t *testing.T) {
	assert := assert.New(t)
	cfg = memoryConfig(t, "memory")

	buf := new(bytes.Buffer)
	cmd := getMatchCmd()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"Homo sapiens", "Canis lupus"})
	err := cmd.Execute()
	require.Nil(t, err)

	var res struct {
		Context      string   `json:"context"`
		Unambiguous  []string `json:"unambiguousNameIds"`
		UnmatchedIDs []string `json:"unmatchedNameIds"`
	}
	err = gnfmt.GNjson{}.Decode(buf.Bytes(), &res)
	require.Nil(t, err)
	assert.Equal("Mammals", res.Context)
	assert.Equal([]string{"0", "1"}, res.Unambiguous)
	assert.Empty(res.UnmatchedIDs)
}

// TestRunMatchBatches shares the inferred context between batches.
func TestRunMatchBatches(t *testing.T) {
	assert := assert.New(t)
	cfg = memoryConfig(t, "memory")

	args := []string{"-f"}
	for range tnrs.MaxFuzzyNames {
		args = append(args, "Rosa canina")
	}
	args = append(args, "Rosa")

	buf := new(bytes.Buffer)
	cmd := getMatchCmd()
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	require.Nil(t, cmd.Execute())

	type batch struct {
		Context     string   `json:"context"`
		Unambiguous []string `json:"unambiguousNameIds"`
	}
	dec := json.NewDecoder(buf)
	var first, second batch
	require.Nil(t, dec.Decode(&first))
	require.Nil(t, dec.Decode(&second))
	assert.Equal("Flowering plants", first.Context)
	assert.Len(first.Unambiguous, tnrs.MaxFuzzyNames)
	assert.Equal("Flowering plants", second.Context)
	assert.Equal([]string{"250"}, second.Unambiguous)
}

// TestRunSubtree prints a Newick tree.
func TestRunSubtree(t *testing.T) {
	assert := assert.New(t)
	cfg = memoryConfig(t, "memory")

	buf := new(bytes.Buffer)
	cmd := getSubtreeCmd()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"770315", "1000010"})
	err := cmd.Execute()
	require.Nil(t, err)
	assert.Contains(buf.String(), "Homo;")
	assert.Contains(buf.String(), "'Homo sapiens'")
}

// TestRunContexts lists context groups.
func TestRunContexts(t *testing.T) {
	assert := assert.New(t)
	cfg = config.New()

	buf := new(bytes.Buffer)
	cmd := getContextsCmd()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Nil(t, err)
	assert.Contains(buf.String(), "ANIMALS:")
	assert.Contains(buf.String(), "Flowering plants")
}
