package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/errcode"
)

func callerName() string {
	pc, _, _, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name()
}

func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Taxonomy store opened without database connection",
		Err:  fmt.Errorf("from %s: not connected to database", callerName()),
	}
}

// EmptyStoreError is returned when the store has no taxonomy.
func EmptyStoreError(backend string) error {
	msg := `The <em>%s</em> taxonomy store is empty

<em>Required steps:</em>
  1. Create the database schema:
     <em>gntnrs create</em>
  2. Load a taxonomy:
     <em>gntnrs populate -t path/to/ott</em>`

	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: []any{backend},
		Err:  fmt.Errorf("from %s: no root taxon in %s store", callerName(), backend),
	}
}

func QueryError(what string, err error) error {
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  "Cannot read %s from taxonomy store",
		Vars: []any{what},
		Err:  fmt.Errorf("from %s: query %s: %w", callerName(), what, err),
	}
}
