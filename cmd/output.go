package cmd

import (
	"fmt"
	"io"

	"github.com/gnames/gnfmt"
)

// printJSON writes pretty JSON of a value.
func printJSON(w io.Writer, v any) error {
	res, err := gnfmt.GNjson{Pretty: true}.Encode(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(res))
	return err
}
