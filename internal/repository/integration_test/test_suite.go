package integration_test

import (
	"context"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/config"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/postgres"
	"github.com/Boring-Software-Nation/figaro-contract/migrations"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger/zap_adapter"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/querier"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

var (
	poolInstance    *pgxpool.Pool
	querierInstance *querier.Querier
	querierOnce     sync.Once
)

// GetQuerier подключается к базе из POSTGRES_* и накатывает миграции
// один раз на весь прогон.
func GetQuerier() *querier.Querier {
	querierOnce.Do(func() {
		// .env.test не читаем, переменные выставляет окружение прогона
		cfg, err := config.LoadDatabase()
		if err != nil {
			log.Fatalf("integration database config: %v", err)
		}

		ctx := context.Background()

		zapLogger, err := zap_adapter.NewZapAdapter("integration-test", "warn")
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Printf("failed to sync logger: %v", err)
			}
		}()

		poolInstance, err = postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			panic(err)
		}

		// db не закрываем, соединения принадлежат пулу
		db := stdlib.OpenDBFromPool(poolInstance)

		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			panic(err)
		}
		if err := goose.UpContext(ctx, db, "."); err != nil {
			panic(err)
		}

		querierInstance = querier.New(poolInstance, pgxv5.DefaultCtxGetter)
	})

	return querierInstance
}

// GetPool отдаёт тот же пул, что и GetQuerier, для менеджера транзакций.
func GetPool() *pgxpool.Pool {
	GetQuerier()
	return poolInstance
}

func SetupDB(t *testing.T, setupSql string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE pending_transfers, contracts CASCADE;
	`)
	require.NoError(t, err)
}
