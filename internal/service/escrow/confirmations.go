package escrow

import (
	"context"
	"fmt"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/google/uuid"
)

// ConfirmPaymentReceived commits the owner's payment after the ledger
// confirmed the pull into the escrow address. A pull the contract stopped
// waiting for is sent back to the payer; the returned transfers must be
// dispatched after commit.
func (s *Service) ConfirmPaymentReceived(ctx context.Context, transfer entities.PendingTransfer) ([]entities.PendingTransfer, error) {
	var refunds []entities.PendingTransfer
	err := s.confirm(ctx, transfer.ContractID, func(ctx context.Context, contract *entities.Contract) error {
		refunds = nil
		if contract.Status != entities.StatusWaitPaymentBySender {
			refund, err := s.returnStale(ctx, contract, transfer, entities.TagOwnerRefund)
			if err != nil {
				return err
			}
			refunds = append(refunds, *refund)
			return nil
		}
		_, err := s.transition(ctx, contract, entities.StatusWaitForCourier, entities.ContractModify{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return refunds, nil
}

// ConfirmDepositReceived works like ConfirmPaymentReceived. A deposit made by
// a courier who has since left the contract is returned to that courier.
func (s *Service) ConfirmDepositReceived(ctx context.Context, transfer entities.PendingTransfer) ([]entities.PendingTransfer, error) {
	var refunds []entities.PendingTransfer
	err := s.confirm(ctx, transfer.ContractID, func(ctx context.Context, contract *entities.Contract) error {
		refunds = nil
		if contract.Status != entities.StatusWaitDepositByCourier || !contract.IsCourier(transfer.From) {
			refund, err := s.returnStale(ctx, contract, transfer, entities.TagCourierRefund)
			if err != nil {
				return err
			}
			refunds = append(refunds, *refund)
			return nil
		}
		_, err := s.transition(ctx, contract, entities.StatusWaitSenderDetails, entities.ContractModify{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return refunds, nil
}

func (s *Service) ConfirmCourierPaid(ctx context.Context, contractID uuid.UUID) error {
	return s.confirm(ctx, contractID, func(ctx context.Context, contract *entities.Contract) error {
		if err := ensureStatus(contract, entities.StatusInProgress); err != nil {
			return err
		}
		_, err := s.transition(ctx, contract, entities.StatusDelivered, entities.ContractModify{})
		return err
	})
}

// ConfirmRefund only checks the contract is known, a refund changes no state.
func (s *Service) ConfirmRefund(ctx context.Context, contractID uuid.UUID) error {
	if _, err := s.repository.GetByID(ctx, contractID); err != nil {
		return fmt.Errorf("get contract: %w", err)
	}
	ActionsTotal.WithLabelValues(entities.ActionRefundCompleted).Inc()
	return nil
}

func (s *Service) confirm(ctx context.Context, contractID uuid.UUID, fn func(ctx context.Context, contract *entities.Contract) error) error {
	return s.txManager.Do(ctx, func(ctx context.Context) error {
		contract, err := s.repository.GetByIDForUpdate(ctx, contractID)
		if err != nil {
			return fmt.Errorf("get contract: %w", err)
		}
		return fn(ctx, contract)
	})
}

// returnStale records a push of the confirmed pull back to whoever paid it.
func (s *Service) returnStale(
	ctx context.Context,
	contract *entities.Contract,
	transfer entities.PendingTransfer,
	tag entities.TransferTag,
) (*entities.PendingTransfer, error) {
	refund, err := s.createTransfer(ctx, contract, tag, entities.TransferKindPush,
		contract.Address, transfer.From, transfer.Amount)
	if err != nil {
		return nil, err
	}
	StaleTransfersReturnedTotal.WithLabelValues(transfer.Tag.String()).Inc()
	return refund, nil
}
