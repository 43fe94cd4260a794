package iopopulate

import (
	"context"
	"fmt"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gntnrs/pkg/db"
	"github.com/gnames/gntnrs/pkg/schema"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// writer inserts rows in batches: CopyFrom for PostgreSQL, prepared
// statements inside transactions for SQLite.
type writer struct {
	op        db.Operator
	batchSize int
	bar       *pb.ProgressBar
}

func newWriter(op db.Operator, batchSize, total int) *writer {
	if batchSize <= 0 {
		batchSize = 10_000
	}
	bar := pb.Full.Start(total)
	bar.Set("prefix", "Populating: ")
	bar.Set(pb.CleanOnFinish, true)
	return &writer{op: op, batchSize: batchSize, bar: bar}
}

func (w *writer) finish() {
	w.bar.Finish()
}

// write runs the producer of rows and inserts the rows into the table
// of the model concurrently.
func (w *writer) write(
	ctx context.Context,
	model schema.DDLGenerator,
	produce func(context.Context, chan<- []any) error,
) error {
	table := model.TableName()
	cols := schema.Columns(model)
	ch := make(chan []any, w.batchSize)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(ch)
		return produce(ctx, ch)
	})

	g.Go(func() error {
		batch := make([][]any, 0, w.batchSize)
		for row := range ch {
			batch = append(batch, row)
			if len(batch) < w.batchSize {
				continue
			}
			if err := w.insert(ctx, table, cols, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
		if len(batch) > 0 {
			return w.insert(ctx, table, cols, batch)
		}
		return nil
	})

	return g.Wait()
}

func (w *writer) insert(
	ctx context.Context,
	table string,
	cols []string,
	rows [][]any,
) error {
	var err error
	if w.op.Backend() == db.Postgres {
		_, err = w.op.Pool().CopyFrom(
			ctx,
			pgx.Identifier{table},
			cols,
			pgx.CopyFromRows(rows),
		)
	} else {
		err = w.insertTx(ctx, table, cols, rows)
	}
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	w.bar.Add(len(rows))
	return nil
}

func (w *writer) insertTx(
	ctx context.Context,
	table string,
	cols []string,
	rows [][]any,
) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)

	tx, err := w.op.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err = stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
