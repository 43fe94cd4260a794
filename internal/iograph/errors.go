package iograph

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/errcode"
)

func NoRootError(taxa int) error {
	msg := "Taxonomy of %d taxa has no root"
	vars := []any{taxa}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.TaxonomyParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no taxon without parent", fn),
	}
}
