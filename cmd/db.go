package cmd

import (
	"context"
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/gntnrs/internal/iodb"
	"github.com/gnames/gntnrs/pkg/config"
	"github.com/gnames/gntnrs/pkg/db"
	"github.com/gnames/gntnrs/pkg/errcode"
)

// connect opens the database of the configured SQL backend.
func connect(ctx context.Context, cfg *config.Config) (db.Operator, error) {
	backend := cfg.Taxonomy.Backend
	if backend != db.Postgres && backend != db.SQLite {
		return nil, &gn.Error{
			Code: errcode.DBUnknownBackendError,
			Msg: `Backend <em>%s</em> does not use a database.
   Set <em>taxonomy.backend</em> to <em>postgres</em> or <em>sqlite</em>.`,
			Vars: []any{backend},
			Err:  errors.New("database command with non-database backend"),
		}
	}

	op, err := iodb.New(backend)
	if err != nil {
		return nil, err
	}
	if err = op.Connect(ctx, cfg); err != nil {
		return nil, err
	}

	if backend == db.SQLite {
		gn.Info("Connected to SQLite database: <em>%s</em>", cfg.SQLitePath())
	} else {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}
	return op, nil
}
