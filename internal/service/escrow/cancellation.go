package escrow

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/google/uuid"
)

type CancelPolicy struct {
	Receiver        entities.RefundReceiver
	After           entities.AfterRefund
	RequiresElapsed bool
}

type policyKey struct {
	role   entities.Role
	status entities.ContractStatus
}

var cancellationPolicies = map[policyKey]CancelPolicy{
	{entities.RoleOwner, entities.StatusWaitPaymentBySender}: {
		Receiver: entities.RefundOwner, After: entities.AfterRefundSetClosed,
	},
	{entities.RoleOwner, entities.StatusWaitForCourier}: {
		Receiver: entities.RefundOwner, After: entities.AfterRefundSetClosed,
	},
	{entities.RoleOwner, entities.StatusWaitDepositByCourier}: {
		Receiver: entities.RefundOwner, After: entities.AfterRefundSetFailed,
	},
	{entities.RoleOwner, entities.StatusWaitSenderDetails}: {
		Receiver: entities.RefundBoth, After: entities.AfterRefundSetFailed, RequiresElapsed: true,
	},
	{entities.RoleOwner, entities.StatusWaitCourierInDepartment}: {
		Receiver: entities.RefundBoth, After: entities.AfterRefundSetFailed, RequiresElapsed: true,
	},
	{entities.RoleOwner, entities.StatusInProgress}: {
		Receiver: entities.RefundOwner, After: entities.AfterRefundSetFailed, RequiresElapsed: true,
	},

	{entities.RoleCourier, entities.StatusWaitDepositByCourier}: {
		Receiver: entities.RefundNoOne, After: entities.AfterRefundStartOver,
	},
	{entities.RoleCourier, entities.StatusWaitSenderDetails}: {
		Receiver: entities.RefundCourier, After: entities.AfterRefundStartOver, RequiresElapsed: true,
	},
	{entities.RoleCourier, entities.StatusWaitCourierInDepartment}: {
		Receiver: entities.RefundCourier, After: entities.AfterRefundStartOver,
	},
	{entities.RoleCourier, entities.StatusInProgress}: {
		Receiver: entities.RefundOwner, After: entities.AfterRefundSetFailed, RequiresElapsed: true,
	},
}

// Decide looks up the cancellation rule for role in status. elapsed tells
// whether the status window is over. The second result is false when the
// cancellation is not allowed.
func Decide(role entities.Role, status entities.ContractStatus, elapsed bool) (CancelPolicy, bool) {
	policy, ok := cancellationPolicies[policyKey{role: role, status: status}]
	if !ok || (policy.RequiresElapsed && !elapsed) {
		return CancelPolicy{}, false
	}
	return policy, true
}

// CancelDelivery applies the cancellation rule for the caller. A rejected
// cancellation returns false and writes nothing. An accepted one commits the
// resulting status right away and requests the refunds. While a pull or the
// courier payout still waits for the ledger the contract cannot be cancelled
// and ErrTransferInFlight is returned.
func (s *Service) CancelDelivery(ctx context.Context, contractID uuid.UUID, caller string) (bool, error) {
	if !isValidContractID(contractID) {
		return false, ErrInvalidContractID
	}
	if !isValidCaller(caller) {
		return false, ErrUnauthorized
	}

	var (
		cancelled bool
		action    string
		refunds   []entities.PendingTransfer
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		cancelled, refunds = false, nil

		contract, err := s.repository.GetByIDForUpdate(ctx, contractID)
		if err != nil {
			return fmt.Errorf("get contract: %w", err)
		}

		role, err := callerRole(contract, caller)
		if err != nil {
			return err
		}

		elapsed := contract.Window == nil || contract.Window.IsOver(s.clock.Now())
		policy, ok := Decide(role, contract.Status, elapsed)
		if !ok {
			CancellationsTotal.WithLabelValues(role.String(), "rejected").Inc()
			return nil
		}

		inFlight, err := s.inFlight(ctx, contract.ID)
		if err != nil {
			return err
		}
		if inFlight.Settling() {
			CancellationsTotal.WithLabelValues(role.String(), "in_flight").Inc()
			return ErrTransferInFlight
		}

		refunds, err = s.refund(ctx, contract, policy.Receiver, inFlight)
		if err != nil {
			return err
		}

		modify := entities.ContractModify{}
		if policy.After == entities.AfterRefundStartOver {
			modify.ClearCourier = true
			modify.ClearDetails = true
		}
		if _, err = s.transition(ctx, contract, policy.After.Status(), modify); err != nil {
			return err
		}

		CancellationsTotal.WithLabelValues(role.String(), string(policy.After)).Inc()
		cancelled, action = true, policy.After.Action()
		return nil
	})
	if err != nil {
		return false, err
	}

	if cancelled {
		ActionsTotal.WithLabelValues(action).Inc()
	}
	if len(refunds) > 0 {
		s.dispatcher.Dispatch(ctx, refunds...)
	}
	return cancelled, nil
}

type refundShare struct {
	tag    entities.TransferTag
	to     string
	amount *big.Int
}

// refund records the refund transfers for receiver. Zero shares are skipped.
// Funds already promised to earlier refunds are not handed out twice.
func (s *Service) refund(
	ctx context.Context,
	contract *entities.Contract,
	receiver entities.RefundReceiver,
	inFlight *entities.InFlight,
) ([]entities.PendingTransfer, error) {
	shares, err := s.refundShares(ctx, contract, receiver, inFlight)
	if err != nil {
		return nil, err
	}

	transfers := make([]entities.PendingTransfer, 0, len(shares))
	for _, share := range shares {
		if share.amount.Sign() <= 0 {
			continue
		}
		transfer, err := s.createTransfer(ctx, contract, share.tag, entities.TransferKindPush,
			contract.Address, share.to, share.amount)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, *transfer)
	}
	return transfers, nil
}

func (s *Service) refundShares(
	ctx context.Context,
	contract *entities.Contract,
	receiver entities.RefundReceiver,
	inFlight *entities.InFlight,
) ([]refundShare, error) {
	switch receiver {
	case entities.RefundOwner:
		balance, err := s.netBalance(ctx, contract, inFlight)
		if err != nil {
			return nil, err
		}
		return []refundShare{{tag: entities.TagOwnerRefund, to: contract.Owner, amount: balance}}, nil

	case entities.RefundCourier:
		if contract.Courier == nil {
			return nil, nil
		}
		return []refundShare{{tag: entities.TagCourierRefund, to: *contract.Courier, amount: contract.DepositAmount}}, nil

	case entities.RefundBoth:
		balance, err := s.netBalance(ctx, contract, inFlight)
		if err != nil {
			return nil, err
		}

		courierShare := new(big.Int).Set(contract.DepositAmount)
		if balance.Cmp(courierShare) < 0 {
			courierShare.Set(balance)
		}
		ownerShare := new(big.Int).Sub(balance, courierShare)

		shares := []refundShare{{tag: entities.TagOwnerRefund, to: contract.Owner, amount: ownerShare}}
		if contract.Courier != nil {
			shares = append(shares, refundShare{tag: entities.TagCourierRefund, to: *contract.Courier, amount: courierShare})
		}
		return shares, nil
	}

	return nil, nil
}
