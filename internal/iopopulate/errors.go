package iopopulate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/errcode"
)

// NotConnectedError creates an error for when populate
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Populate operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// ClearTableError is returned when old data cannot be removed.
func ClearTableError(table string, err error) error {
	msg := `Cannot remove old data from <em>%s</em>

<em>How to fix:</em>
  1. Create the schema first: <em>gntnrs create</em>
  2. Check database user permissions`

	return &gn.Error{
		Code: errcode.PopulateClearError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to clear %s: %w", table, err),
	}
}

func PopulateTaxaError(err error) error {
	return &gn.Error{
		Code: errcode.PopulateTaxaError,
		Msg:  "Cannot import taxa",
		Err:  fmt.Errorf("failed to import taxa: %w", err),
	}
}

func PopulateEntriesError(err error) error {
	return &gn.Error{
		Code: errcode.PopulateEntriesError,
		Msg:  "Cannot import name index entries",
		Err:  fmt.Errorf("failed to import name entries: %w", err),
	}
}

func PopulateMetadataError(err error) error {
	return &gn.Error{
		Code: errcode.PopulateMetadataError,
		Msg:  "Cannot import taxonomy metadata",
		Err:  fmt.Errorf("failed to import metadata: %w", err),
	}
}
