package tnrs

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

type matchFunc func(context.Context, queryName) (outcome, error)

type indexedName struct {
	idx int
	qn  queryName
}

type indexedOutcome struct {
	idx int
	o   outcome
}

// each applies fn to every name. With more than one job names are
// processed by a pool of workers. Outcomes always come back in input
// order.
func (r *run) each(
	ctx context.Context,
	names []queryName,
	fn matchFunc,
) ([]outcome, error) {
	res := make([]outcome, len(names))
	if r.q.jobs <= 1 || len(names) < 2 {
		for i, qn := range names {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			o, err := fn(ctx, qn)
			if err != nil {
				return nil, err
			}
			res[i] = o
		}
		return res, nil
	}

	chIn := make(chan indexedName)
	chOut := make(chan indexedOutcome)
	g, gCtx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range min(r.q.jobs, len(names)) {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return matchWorker(gCtx, fn, chIn, chOut)
		})
	}

	g.Go(func() error {
		defer close(chIn)
		for i, qn := range names {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case chIn <- indexedName{idx: i, qn: qn}:
			}
		}
		return nil
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	for v := range chOut {
		res[v.idx] = v.o
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func matchWorker(
	ctx context.Context,
	fn matchFunc,
	chIn <-chan indexedName,
	chOut chan<- indexedOutcome,
) error {
	for v := range chIn {
		if err := ctx.Err(); err != nil {
			return err
		}
		o, err := fn(ctx, v.qn)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- indexedOutcome{idx: v.idx, o: o}:
		}
	}
	return nil
}
