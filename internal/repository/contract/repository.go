package contract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/internal/repository"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/escrow"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const contractColumns = `id, address, address_index, owner, courier, status,
	token, token_name, token_symbol, token_decimals, token_total_supply::text,
	confirm_public_key, payment_amount::text, deposit_amount::text,
	rough_from, rough_to, exact_from, exact_to, comment,
	window_fixed_at, window_duration_ms,
	expiration_deposit_ms, expiration_details_ms, expiration_in_department_ms, expiration_delivery_ms,
	created_at, updated_at`

var errMissingID = errors.New("contract id is required")

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, contractEntity entities.Contract) (*entities.Contract, error) {
	contractModel := FromDomain(&contractEntity)

	query := `INSERT INTO contracts (
			address, address_index, owner, status,
			token, token_name, token_symbol, token_decimals, token_total_supply,
			confirm_public_key, payment_amount, deposit_amount, rough_from, rough_to,
			expiration_deposit_ms, expiration_details_ms, expiration_in_department_ms, expiration_delivery_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric, $10, $11::numeric, $12::numeric, $13, $14, $15, $16, $17, $18)
		RETURNING ` + contractColumns

	created, err := scanContract(r.querier.QueryRow(
		ctx,
		query,
		contractModel.Address,
		contractModel.AddressIndex,
		contractModel.Owner,
		contractModel.Status,
		contractModel.Token,
		contractModel.TokenName,
		contractModel.TokenSymbol,
		contractModel.TokenDecimals,
		contractModel.TokenTotalSupply,
		contractModel.ConfirmPublicKey,
		contractModel.PaymentAmount,
		contractModel.DepositAmount,
		contractModel.RoughFrom,
		contractModel.RoughTo,
		contractModel.ExpirationDepositMs,
		contractModel.ExpirationDetailsMs,
		contractModel.ExpirationInDepartmentMs,
		contractModel.ExpirationDeliveryMs,
	))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) &&
			strings.Contains(repository.ConstraintName(err), "amount") {
			return nil, escrow.ErrInvalidAmount
		}
		return nil, fmt.Errorf("unexpected contract repository create error: %w", err)
	}

	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate locks the row until the surrounding transaction ends.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	return r.get(ctx, id, true)
}

func (r *Repository) Update(ctx context.Context, contractModify entities.ContractModify) (*entities.Contract, error) {
	modifyModel := FromDomainModify(&contractModify)
	if modifyModel.ID == nil {
		return nil, errMissingID
	}

	builder := qb.Update("contracts")

	if modifyModel.Status != nil {
		builder = builder.Set("status", modifyModel.Status)
	}

	builder = setOrClear(builder, "courier", modifyModel.Courier, modifyModel.ClearCourier)
	builder = setOrClear(builder, "exact_from", modifyModel.ExactFrom, modifyModel.ClearDetails)
	builder = setOrClear(builder, "exact_to", modifyModel.ExactTo, modifyModel.ClearDetails)
	builder = setOrClear(builder, "comment", modifyModel.Comment, modifyModel.ClearDetails)

	switch {
	case modifyModel.WindowFixedAt != nil:
		builder = builder.
			Set("window_fixed_at", modifyModel.WindowFixedAt).
			Set("window_duration_ms", modifyModel.WindowDurationMs)
	case modifyModel.ClearWindow:
		builder = builder.
			Set("window_fixed_at", nil).
			Set("window_duration_ms", nil)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": *modifyModel.ID}).
		Suffix("RETURNING " + contractColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected contract repository update error: %w", err)
	}

	updated, err := scanContract(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, escrow.ErrContractNotFound
		}
		return nil, fmt.Errorf("unexpected contract repository update error: %w", err)
	}

	return updated, nil
}

// NextAddressIndex hands out derivation indexes. Values are never reused,
// even when the surrounding transaction rolls back.
func (r *Repository) NextAddressIndex(ctx context.Context) (uint32, error) {
	var index int64
	err := r.querier.QueryRow(ctx, `SELECT nextval('contract_address_index_seq')`).Scan(&index)
	if err != nil {
		return 0, fmt.Errorf("unexpected contract repository next address index error: %w", err)
	}
	return uint32(index), nil //nolint:gosec // sequence is capped at 2^31-1
}

func (r *Repository) get(ctx context.Context, id uuid.UUID, forUpdate bool) (*entities.Contract, error) {
	builder := qb.
		Select(contractColumns).
		From("contracts").
		Where(sq.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected contract repository get error: %w", err)
	}

	contract, err := scanContract(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, escrow.ErrContractNotFound
		}
		return nil, fmt.Errorf("unexpected contract repository get error: %w", err)
	}

	return contract, nil
}

// setOrClear writes value when present, NULL when reset is set and leaves
// the column alone otherwise.
func setOrClear(builder sq.UpdateBuilder, column string, value *string, reset bool) sq.UpdateBuilder {
	switch {
	case value != nil:
		return builder.Set(column, value)
	case reset:
		return builder.Set(column, nil)
	}
	return builder
}

func scanContract(row pgx.Row) (*entities.Contract, error) {
	var contractModel ContractDB
	err := row.Scan(
		&contractModel.ID,
		&contractModel.Address,
		&contractModel.AddressIndex,
		&contractModel.Owner,
		&contractModel.Courier,
		&contractModel.Status,
		&contractModel.Token,
		&contractModel.TokenName,
		&contractModel.TokenSymbol,
		&contractModel.TokenDecimals,
		&contractModel.TokenTotalSupply,
		&contractModel.ConfirmPublicKey,
		&contractModel.PaymentAmount,
		&contractModel.DepositAmount,
		&contractModel.RoughFrom,
		&contractModel.RoughTo,
		&contractModel.ExactFrom,
		&contractModel.ExactTo,
		&contractModel.Comment,
		&contractModel.WindowFixedAt,
		&contractModel.WindowDurationMs,
		&contractModel.ExpirationDepositMs,
		&contractModel.ExpirationDetailsMs,
		&contractModel.ExpirationInDepartmentMs,
		&contractModel.ExpirationDeliveryMs,
		&contractModel.CreatedAt,
		&contractModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return ToDomain(&contractModel)
}
