package querier

import (
	"context"
	"strconv"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier выполняет запросы в транзакции из контекста, а без неё в пуле.
type Querier struct {
	pool   *pgxpool.Pool
	getter *pgxv5.CtxGetter
}

func New(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Querier {
	return &Querier{
		pool:   pool,
		getter: getter,
	}
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	executor, done := q.get(ctx, "exec")
	defer done()
	return executor.Exec(ctx, sql, args...)
}

func (q *Querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	executor, done := q.get(ctx, "query")
	defer done()
	return executor.Query(ctx, sql, args...)
}

// QueryRow измеряет только отправку запроса, Scan остаётся за вызывающим.
func (q *Querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	executor, done := q.get(ctx, "query_row")
	defer done()
	return executor.QueryRow(ctx, sql, args...)
}

func (q *Querier) get(ctx context.Context, operation string) (pgxv5.Tr, func()) {
	inTx := q.getter.DefaultTrOrDB(ctx, nil) != nil
	executor := q.getter.DefaultTrOrDB(ctx, q.pool)

	start := time.Now()
	return executor, func() {
		DBQueryDuration.
			WithLabelValues(operation, strconv.FormatBool(inTx)).
			Observe(time.Since(start).Seconds())
	}
}
