package store

import (
	"context"
	"errors"
	"time"

	"devsolutions/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgAdapter wraps pg.PG and implements TxRunner and Pinger
type pgAdapter struct {
	p     *pg.PG
	trace traceFn
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{p: p, trace: newTraceFn(p.Tracer, p.SlowMs)}
}

// traceFn reports one finished statement; a nil traceFn is a no op
type traceFn func(ctx context.Context, sql string, args []any, start time.Time, err error)

func newTraceFn(t pg.QueryTracer, slowMs int) traceFn {
	if t == nil {
		return func(context.Context, string, []any, time.Time, error) {}
	}
	slowUS := int64(slowMs) * 1000
	return func(ctx context.Context, sql string, args []any, start time.Time, err error) {
		elapsed := time.Since(start).Microseconds()
		t.OnQuery(ctx, pg.QueryEvent{
			SQL:       sql,
			Args:      args,
			ElapsedUS: elapsed,
			Err:       err,
			Slow:      slowUS >= 0 && elapsed >= slowUS,
		})
	}
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil || a.p.Pool == nil {
		return errors.New("pg: nil adapter")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error { a.p.Close(); return nil }

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return exec(ctx, a.p.Pool, a.trace, sql, args)
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return query(ctx, a.p.Pool, a.trace, sql, args)
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return queryRow(ctx, a.p.Pool, a.trace, sql, args)
}

// Tx runs fn in a transaction, rolling back when fn fails
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(txQuerier{tx: tx, trace: a.trace}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// txQuerier is the RowQuerier handed to Tx callbacks
type txQuerier struct {
	tx    pgx.Tx
	trace traceFn
}

func (t txQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return exec(ctx, t.tx, t.trace, sql, args)
}

func (t txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return query(ctx, t.tx, t.trace, sql, args)
}

func (t txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return queryRow(ctx, t.tx, t.trace, sql, args)
}

// pgxQuerier is the part of pgxpool.Pool and pgx.Tx the adapters need
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func exec(ctx context.Context, q pgxQuerier, trace traceFn, sql string, args []any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.Exec(ctx, sql, args...)
	trace(ctx, sql, args, start, err)
	return tag{ct}, err
}

func query(ctx context.Context, q pgxQuerier, trace traceFn, sql string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := q.Query(ctx, sql, args...)
	trace(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

// queryRow traces once Scan returns so the scan error is reported too
func queryRow(ctx context.Context, q pgxQuerier, trace traceFn, sql string, args []any) Row {
	start := time.Now()
	return row{
		r:     q.QueryRow(ctx, sql, args...),
		after: func(err error) { trace(ctx, sql, args, start, err) },
	}
}

type row struct {
	r     pgx.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct{ r pgx.Rows }

func (x rows) Next() bool            { return x.r.Next() }
func (x rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rows) Err() error            { return x.r.Err() }
func (x rows) Close()                { x.r.Close() }
func (x rows) Columns() []string {
	f := x.r.FieldDescriptions()
	out := make([]string, len(f))
	for i := range f {
		out[i] = f[i].Name
	}
	return out
}

type tag struct{ t pgconn.CommandTag }

func (t tag) String() string      { return t.t.String() }
func (t tag) RowsAffected() int64 { return t.t.RowsAffected() }
