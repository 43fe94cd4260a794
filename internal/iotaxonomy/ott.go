// Package iotaxonomy reads taxonomies into taxonomy.Source. It supports
// the OTT distribution (pipe-delimited taxonomy.tsv, synonyms.tsv and
// deprecated.tsv) and YAML documents used for small taxonomies and test
// fixtures.
package iotaxonomy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnlib"
	"github.com/gnames/gntnrs/pkg/taxonomy"
)

const (
	TaxonomyFile   = "taxonomy.tsv"
	SynonymsFile   = "synonyms.tsv"
	DeprecatedFile = "deprecated.tsv"
	VersionFile    = "version.txt"

	ottSep = "\t|\t"
)

var errNoHeader = errors.New("header is missing")

// LoadOTT reads an OTT taxonomy directory. Only taxonomy.tsv is
// required.
func LoadOTT(dir string) (taxonomy.Source, error) {
	res := taxonomy.Source{Metadata: map[string]any{"source": "ott"}}

	path := filepath.Join(dir, TaxonomyFile)
	err := readFile(path, true, func(r io.Reader) error {
		var err error
		res.Taxa, err = ReadTaxa(r, path)
		return err
	})
	if err != nil {
		return res, err
	}

	path = filepath.Join(dir, SynonymsFile)
	err = readFile(path, false, func(r io.Reader) error {
		var err error
		res.Synonyms, err = ReadSynonyms(r, path)
		return err
	})
	if err != nil {
		return res, err
	}

	path = filepath.Join(dir, DeprecatedFile)
	err = readFile(path, false, func(r io.Reader) error {
		var err error
		res.Deprecated, err = ReadDeprecated(r, path)
		return err
	})
	if err != nil {
		return res, err
	}

	if bs, err := os.ReadFile(filepath.Join(dir, VersionFile)); err == nil {
		res.Metadata["version"] = strings.TrimSpace(string(bs))
	}

	slog.Info("Loaded OTT taxonomy",
		"dir", dir,
		"taxa", humanize.Comma(int64(len(res.Taxa))),
		"synonyms", humanize.Comma(int64(len(res.Synonyms))),
		"deprecated", humanize.Comma(int64(len(res.Deprecated))),
	)
	return res, nil
}

func readFile(path string, required bool, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		slog.Debug("Optional taxonomy file is absent", "path", path)
		return nil
	}
	if err != nil {
		return TaxonomyReadError(path, err)
	}
	defer f.Close()
	return fn(f)
}

// ReadTaxa parses rows of an OTT taxonomy.tsv file.
func ReadTaxa(r io.Reader, path string) ([]taxonomy.Taxon, error) {
	var res []taxonomy.Taxon
	err := readRows(r, path, func(row map[string]string, line int) error {
		id, err := parseID(row["uid"])
		if err != nil {
			return TaxonomyParseError(path, line, err)
		}
		var parent int64
		if p := row["parent_uid"]; p != "" {
			if parent, err = parseID(p); err != nil {
				return TaxonomyParseError(path, line, err)
			}
		}
		res = append(res, taxonomy.Taxon{
			ID:         id,
			ParentID:   parent,
			Name:       row["name"],
			UniqueName: row["uniqname"],
			Rank:       row["rank"],
			Flags:      taxonomy.ParseFlags(row["flags"]),
		})
		return nil
	})
	return res, err
}

// ReadSynonyms parses rows of an OTT synonyms.tsv file.
func ReadSynonyms(r io.Reader, path string) ([]taxonomy.Synonym, error) {
	var res []taxonomy.Synonym
	err := readRows(r, path, func(row map[string]string, line int) error {
		id, err := parseID(row["uid"])
		if err != nil {
			return TaxonomyParseError(path, line, err)
		}
		res = append(res, taxonomy.Synonym{
			TaxonID: id,
			Name:    row["name"],
			Type:    row["type"],
		})
		return nil
	})
	return res, err
}

// ReadDeprecated parses rows of an OTT deprecated.tsv file. Rows that
// carry no id are skipped.
func ReadDeprecated(r io.Reader, path string) ([]taxonomy.Taxon, error) {
	var res []taxonomy.Taxon
	err := readRows(r, path, func(row map[string]string, line int) error {
		rawID := row["id"]
		if rawID == "" {
			rawID = row["uid"]
		}
		if rawID == "" || row["name"] == "" {
			return nil
		}
		id, err := parseID(rawID)
		if err != nil {
			return TaxonomyParseError(path, line, err)
		}
		res = append(res, taxonomy.Taxon{
			ID:           id,
			Name:         row["name"],
			Rank:         row["rank"],
			IsDeprecated: true,
		})
		return nil
	})
	return res, err
}

// readRows reads a pipe-delimited file with a header line and calls fn
// with every row keyed by header names.
func readRows(
	r io.Reader,
	path string,
	fn func(row map[string]string, line int) error,
) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var header []string
	var line int
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := splitRow(text)
		if header == nil {
			header = fields
			continue
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(fields) {
				row[h] = gnlib.FixUtf8(strings.TrimSpace(fields[i]))
			}
		}
		if err := fn(row, line); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return TaxonomyReadError(path, err)
	}
	if header == nil {
		return TaxonomyParseError(path, 1, errNoHeader)
	}
	return nil
}

// splitRow splits a line of "a\t|\tb\t|\t" format. Files that use plain
// tabs are accepted too.
func splitRow(line string) []string {
	line = strings.TrimSuffix(line, "\t|")
	line = strings.TrimSuffix(line, "\t|\t")
	if strings.Contains(line, ottSep) {
		return strings.Split(line, ottSep)
	}
	return strings.Split(line, "\t")
}

func parseID(s string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "ott")
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad taxon id %q: %w", s, err)
	}
	return id, nil
}
