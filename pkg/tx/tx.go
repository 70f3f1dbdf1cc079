package tx

import (
	"context"
	"errors"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/pkg/retrier"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/retrier/backoff_adapter"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// DefaultRetry повторяет транзакцию при конфликте сериализации.
var DefaultRetry = retrier.Config{
	InitialInterval: 10 * time.Millisecond,
	MaxInterval:     200 * time.Millisecond,
	MaxElapsedTime:  2 * time.Second,
	Randomization:   0.5,
	Multiplier:      2,
	MaxRetries:      5,
}

type Option func(*Manager)

// WithRetry заменяет политику повторов, в основном для тестов.
func WithRetry(cfg retrier.Config) Option {
	return func(m *Manager) {
		m.retryConfig = cfg
	}
}

// Manager инкапсулирует логику управления транзакциями.
type Manager struct {
	internal    *manager.Manager
	retryConfig retrier.Config
	retrier     retrier.Retrier
}

// New создаёт новый менеджер транзакций.
func New(db pgxv5.Transactional, opts ...Option) *Manager {
	m := &Manager{
		internal:    manager.Must(pgxv5.NewDefaultFactory(db)),
		retryConfig: DefaultRetry,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.retryConfig.ShouldRetry = IsSerializationFailure
	m.retrier = backoff_adapter.New(m.retryConfig)
	return m
}

func (m *Manager) execWithIsoLevel(
	ctx context.Context,
	level pgx.TxIsoLevel,
	fn func(ctx context.Context) error,
) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: level}),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}

// Do выполняет fn в serializable транзакции. Внешняя транзакция
// перезапускается целиком при конфликте сериализации, вложенная
// только пробрасывает ошибку наружу.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return m.execWithIsoLevel(ctx, pgx.Serializable, fn)
	}

	return m.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		return m.execWithIsoLevel(ctx, pgx.Serializable, fn)
	})
}

// IsSerializationFailure сообщает, что postgres откатил транзакцию из-за
// конкурентного изменения и её можно повторить.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
}

func inTransaction(ctx context.Context) bool {
	return pgxv5.DefaultCtxGetter.DefaultTrOrDB(ctx, nil) != nil
}
