// Package parserpool provides a pool of gnparser instances for concurrent
// name parsing. Queries are normalized to canonical forms before they
// reach name indexes. This is a pure package - parsing is computation,
// not I/O.
package parserpool

import (
	"fmt"
	"runtime"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
	"github.com/gnames/gntnrs/pkg/taxonomy"
)

// Pool provides a pool of gnparser instances for concurrent parsing.
// It maintains separate pools for botanical and zoological nomenclatural codes.
type Pool interface {
	// Parse parses a scientific name string using the specified nomenclatural code.
	// This method is safe for concurrent use.
	Parse(nameString string, code nomcode.Code) (parsed.Parsed, error)

	// Normalize returns the simple canonical form of a name parsed by
	// zoological rules, or an empty string if the name cannot be parsed.
	Normalize(nameString string) string

	// Normalizer returns a normalizer that follows the rules of the
	// given code.
	Normalizer(code taxonomy.Nomenclature) Normalizer

	// Close shuts down the parser pools and releases resources.
	// After calling Close, the pool should not be used.
	Close()
}

// Normalizer converts name strings to their canonical forms.
type Normalizer interface {
	Normalize(nameString string) string
}

type pool struct {
	botanicalCh  chan gnparser.GNparser
	zoologicalCh chan gnparser.GNparser
}

// NewPool creates a new parser pool with the specified number of workers.
// If jobsNum is 0, it defaults to runtime.NumCPU().
// Total parsers created = 2 * poolSize (one pool per nomenclatural code).
func NewPool(jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	botanicalCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	zoologicalCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Zoological))

	return &pool{
		botanicalCh:  gnparser.NewPool(botanicalCfg, poolSize),
		zoologicalCh: gnparser.NewPool(zoologicalCfg, poolSize),
	}
}

// Parse parses a scientific name string using the specified nomenclatural code.
func (p *pool) Parse(nameString string, code nomcode.Code) (parsed.Parsed, error) {
	var ch chan gnparser.GNparser
	switch code {
	case nomcode.Botanical:
		ch = p.botanicalCh
	case nomcode.Zoological:
		ch = p.zoologicalCh
	default:
		return parsed.Parsed{}, fmt.Errorf("unsupported nomenclatural code: %v", code)
	}

	// blocks if all parsers are busy
	parser := <-ch
	result := parser.ParseName(nameString)
	ch <- parser

	return result, nil
}

func (p *pool) Normalize(nameString string) string {
	return p.normalize(nameString, nomcode.Zoological)
}

func (p *pool) Normalizer(code taxonomy.Nomenclature) Normalizer {
	return codeNormalizer{p: p, code: parserCode(code)}
}

func (p *pool) normalize(nameString string, code nomcode.Code) string {
	res, err := p.Parse(nameString, code)
	if err != nil || !res.Parsed || res.Canonical == nil {
		return ""
	}
	return res.Canonical.Simple
}

// Close shuts down both parser pools and releases resources.
func (p *pool) Close() {
	for _, ch := range []chan gnparser.GNparser{p.botanicalCh, p.zoologicalCh} {
		if ch == nil {
			continue
		}
		close(ch)
		for range ch {
		}
	}
}

type codeNormalizer struct {
	p    *pool
	code nomcode.Code
}

func (n codeNormalizer) Normalize(nameString string) string {
	return n.p.normalize(nameString, n.code)
}

// parserCode maps codes of taxonomic contexts to parser codes. Names of
// bacteria and viruses are parsed by zoological rules.
func parserCode(code taxonomy.Nomenclature) nomcode.Code {
	if code == taxonomy.ICN {
		return nomcode.Botanical
	}
	return nomcode.Zoological
}
