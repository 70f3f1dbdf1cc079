package transfer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/internal/repository"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/escrow"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/settlement"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const transferColumns = `id, contract_id, tag, kind, token, from_address, to_address, amount::text, created_at, dispatched_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, transferEntity entities.PendingTransfer) (*entities.PendingTransfer, error) {
	transferModel := FromDomain(&transferEntity)

	query := `INSERT INTO pending_transfers (contract_id, tag, kind, token, from_address, to_address, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric)
		RETURNING ` + transferColumns

	created, err := scanTransfer(r.querier.QueryRow(
		ctx,
		query,
		transferModel.ContractID,
		transferModel.Tag,
		transferModel.Kind,
		transferModel.Token,
		transferModel.FromAddress,
		transferModel.ToAddress,
		transferModel.Amount,
	))
	if err != nil {
		switch {
		case repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation):
			return nil, escrow.ErrAlreadyPaid
		case repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation):
			return nil, escrow.ErrContractNotFound
		}
		return nil, fmt.Errorf("unexpected transfer repository create error: %w", err)
	}

	return created, nil
}

func (r *Repository) ExistsByContractAndTag(ctx context.Context, contractID uuid.UUID, tag entities.TransferTag) (bool, error) {
	query := `SELECT EXISTS (
			SELECT 1 FROM pending_transfers WHERE contract_id = $1 AND tag = $2
		)`

	var exists bool
	err := r.querier.QueryRow(ctx, query, contractID, int16(tag)).Scan(&exists) //nolint:gosec // tags are 1..5
	if err != nil {
		return false, fmt.Errorf("unexpected transfer repository exists error: %w", err)
	}

	return exists, nil
}

// InFlight sums the contract's pending transfers by what they do to the
// escrow balance.
func (r *Repository) InFlight(ctx context.Context, contractID uuid.UUID) (*entities.InFlight, error) {
	query := `SELECT
			COALESCE(SUM(amount) FILTER (WHERE tag IN (1, 2)), 0)::text,
			COALESCE(SUM(amount) FILTER (WHERE tag = 3), 0)::text,
			COALESCE(SUM(amount) FILTER (WHERE tag IN (4, 5)), 0)::text
		FROM pending_transfers
		WHERE contract_id = $1`

	var pulls, payouts, refunds string
	err := r.querier.QueryRow(ctx, query, contractID).Scan(&pulls, &payouts, &refunds)
	if err != nil {
		return nil, fmt.Errorf("unexpected transfer repository in flight error: %w", err)
	}

	inFlight := entities.NoneInFlight()
	for _, field := range []struct {
		raw string
		dst *big.Int
	}{
		{pulls, inFlight.Pulls},
		{payouts, inFlight.Payouts},
		{refunds, inFlight.Refunds},
	} {
		amount, err := entities.ParseAmount(field.raw)
		if err != nil {
			return nil, fmt.Errorf("in flight amount %q: %w", field.raw, err)
		}
		field.dst.Set(amount)
	}

	return &inFlight, nil
}

// Take removes the transfer and returns it. A second Take of the same id
// finds nothing, so each confirmation is applied at most once.
func (r *Repository) Take(ctx context.Context, id uuid.UUID) (*entities.PendingTransfer, error) {
	query := `DELETE FROM pending_transfers WHERE id = $1 RETURNING ` + transferColumns

	taken, err := scanTransfer(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, settlement.ErrPendingTransferNotFound
		}
		return nil, fmt.Errorf("unexpected transfer repository take error: %w", err)
	}

	return taken, nil
}

func (r *Repository) ListUndispatched(ctx context.Context, createdBefore time.Time, limit uint64) ([]entities.PendingTransfer, error) {
	query, args, err := qb.
		Select(transferColumns).
		From("pending_transfers").
		Where(sq.Eq{"dispatched_at": nil}).
		Where(sq.Lt{"created_at": createdBefore}).
		OrderBy("created_at ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected transfer repository list undispatched error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected transfer repository list undispatched error: %w", err)
	}
	defer rows.Close()

	transfers := make([]entities.PendingTransfer, 0, limit)
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected transfer repository list undispatched error: %w", err)
		}
		transfers = append(transfers, *transfer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected transfer repository list undispatched error: %w", err)
	}

	return transfers, nil
}

// MarkDispatched is a no-op for a transfer that was already settled and removed.
func (r *Repository) MarkDispatched(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE pending_transfers SET dispatched_at = $2 WHERE id = $1`

	_, err := r.querier.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("unexpected transfer repository mark dispatched error: %w", err)
	}

	return nil
}

func scanTransfer(row pgx.Row) (*entities.PendingTransfer, error) {
	var transferModel PendingTransferDB
	err := row.Scan(
		&transferModel.ID,
		&transferModel.ContractID,
		&transferModel.Tag,
		&transferModel.Kind,
		&transferModel.Token,
		&transferModel.FromAddress,
		&transferModel.ToAddress,
		&transferModel.Amount,
		&transferModel.CreatedAt,
		&transferModel.DispatchedAt,
	)
	if err != nil {
		return nil, err
	}

	return ToDomain(&transferModel)
}
