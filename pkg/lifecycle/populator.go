package lifecycle

import (
	"context"

	"github.com/gnames/gntnrs/pkg/taxonomy"
)

// Populator writes a taxonomy into a SQL store, replacing its previous
// content.
type Populator interface {
	Populate(ctx context.Context, src taxonomy.Source) error
}
