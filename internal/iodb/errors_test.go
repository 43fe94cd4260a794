package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/pkg/errcode"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"connection", ConnectionError("localhost", 5432, "db", "pg", cause),
			errcode.DBConnectionError},
		{"sqlite", SQLiteOpenError("/tmp/x.sqlite", cause),
			errcode.DBSQLiteOpenError},
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError},
		{"backend", UnknownBackendError("memory"), errcode.DBUnknownBackendError},
		{"drop", DropTableError("taxa", cause), errcode.DBDropTableError},
	}

	for _, v := range tests {
		var gnErr *gn.Error
		assert.True(t, errors.As(v.err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		assert.Contains(t, gnErr.Err.Error(), "from ", v.msg)
	}

	var gnErr *gn.Error
	errors.As(ConnectionError("h", 1, "db", "u", cause), &gnErr)
	assert.ErrorIs(t, gnErr.Err, cause)
}
