package parserpool_test

import (
	"sync"
	"testing"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gntnrs/pkg/parserpool"
	"github.com/gnames/gntnrs/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	tests := []struct {
		msg    string
		name   string
		code   nomcode.Code
		parsed bool
		simple string
	}{
		{"botanical", "Plantago major L.", nomcode.Botanical, true, "Plantago major"},
		{"zoological", "Homo sapiens Linnaeus, 1758", nomcode.Zoological,
			true, "Homo sapiens"},
		{"not a name", "1234", nomcode.Zoological, false, ""},
	}

	for _, v := range tests {
		res, err := pool.Parse(v.name, v.code)
		assert.Nil(t, err, v.msg)
		assert.Equal(t, v.parsed, res.Parsed, v.msg)
		if v.parsed {
			assert.Equal(t, v.simple, res.Canonical.Simple, v.msg)
		}
	}

	_, err := pool.Parse("Plantago major", nomcode.Bacterial)
	assert.NotNil(t, err)
}

// Zoological rules treat the name in parentheses as a subgenus, botanical
// rules ignore it.
func TestNormalizer(t *testing.T) {
	assert := assert.New(t)
	pool := parserpool.NewPool(1)
	defer pool.Close()

	name := "Aus (Bus)"
	assert.Equal("Bus", pool.Normalize(name))
	assert.Equal("Bus", pool.Normalizer(taxonomy.ICZN).Normalize(name))
	assert.Equal("Aus", pool.Normalizer(taxonomy.ICN).Normalize(name))
	assert.Equal("", pool.Normalize("1234"))
	assert.Equal("Homo sapiens", pool.Normalize("Homo sapiens (Linnaeus, 1758)"))
}

func TestConcurrent(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	var wg sync.WaitGroup
	res := make([]string, 20)
	for i := range res {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res[i] = pool.Normalize("Passer domesticus (Linnaeus, 1758)")
		}()
	}
	wg.Wait()
	for _, v := range res {
		assert.Equal(t, "Passer domesticus", v)
	}
}
