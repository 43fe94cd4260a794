package lifecycle_test

import (
	"testing"

	"github.com/gnames/gntnrs/internal/iodb"
	"github.com/gnames/gntnrs/internal/iooptimize"
	"github.com/gnames/gntnrs/internal/iopopulate"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestPopulatorContract ensures that iopopulate satisfies the
// lifecycle.Populator interface.
func TestPopulatorContract(t *testing.T) {
	var p lifecycle.Populator = iopopulate.New(config.New(), iodb.NewSQLiteOperator())
	assert.NotNil(t, p)
}

// TestOptimizerContract ensures that iooptimize satisfies the
// lifecycle.Optimizer interface.
func TestOptimizerContract(t *testing.T) {
	var o lifecycle.Optimizer = iooptimize.NewOptimizer(iodb.NewSQLiteOperator())
	assert.NotNil(t, o)
}
