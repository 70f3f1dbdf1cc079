package transfer_handle

import (
	"context"
	"fmt"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/settlement"
)

type TagHandlerFactory struct {
	escrowService settlement.EscrowService
}

func NewTagHandlerFactory(escrowService settlement.EscrowService) *TagHandlerFactory {
	return &TagHandlerFactory{
		escrowService: escrowService,
	}
}

func (f *TagHandlerFactory) GetHandler(tag entities.TransferTag) (settlement.ExecuteFn, error) {
	switch tag {
	case entities.TagPaymentReceivedBySender:
		return f.paymentReceivedHandler, nil
	case entities.TagDepositReceivedByCourier:
		return f.depositReceivedHandler, nil
	case entities.TagPaymentToCourier:
		return f.courierPaidHandler, nil
	case entities.TagOwnerRefund, entities.TagCourierRefund:
		return f.refundHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", settlement.ErrUnknownTransferTag, tag)
	}
}

func (f *TagHandlerFactory) paymentReceivedHandler(ctx context.Context, transfer entities.PendingTransfer) ([]entities.PendingTransfer, error) {
	refunds, err := f.escrowService.ConfirmPaymentReceived(ctx, transfer)
	if err != nil {
		return nil, fmt.Errorf("confirm payment for contract %s: %w", transfer.ContractID, err)
	}
	return refunds, nil
}

func (f *TagHandlerFactory) depositReceivedHandler(ctx context.Context, transfer entities.PendingTransfer) ([]entities.PendingTransfer, error) {
	refunds, err := f.escrowService.ConfirmDepositReceived(ctx, transfer)
	if err != nil {
		return nil, fmt.Errorf("confirm deposit for contract %s: %w", transfer.ContractID, err)
	}
	return refunds, nil
}

func (f *TagHandlerFactory) courierPaidHandler(ctx context.Context, transfer entities.PendingTransfer) ([]entities.PendingTransfer, error) {
	if err := f.escrowService.ConfirmCourierPaid(ctx, transfer.ContractID); err != nil {
		return nil, fmt.Errorf("confirm courier payout for contract %s: %w", transfer.ContractID, err)
	}
	return nil, nil
}

func (f *TagHandlerFactory) refundHandler(ctx context.Context, transfer entities.PendingTransfer) ([]entities.PendingTransfer, error) {
	if err := f.escrowService.ConfirmRefund(ctx, transfer.ContractID); err != nil {
		return nil, fmt.Errorf("confirm %s for contract %s: %w", transfer.Tag, transfer.ContractID, err)
	}
	return nil, nil
}
