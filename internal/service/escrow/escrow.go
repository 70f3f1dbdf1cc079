package escrow

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/google/uuid"
)

type Service struct {
	repository Repository
	transfers  TransferRepository
	ledger     Ledger
	dispatcher TransferDispatcher
	verifier   SignatureVerifier
	addresses  AddressDeriver
	windows    WindowFactory
	clock      Clock
	txManager  TxManager
}

func New(
	repository Repository,
	transfers TransferRepository,
	ledger Ledger,
	dispatcher TransferDispatcher,
	verifier SignatureVerifier,
	addresses AddressDeriver,
	windows WindowFactory,
	clock Clock,
	txManager TxManager,
) *Service {
	return &Service{
		repository: repository,
		transfers:  transfers,
		ledger:     ledger,
		dispatcher: dispatcher,
		verifier:   verifier,
		addresses:  addresses,
		windows:    windows,
		clock:      clock,
		txManager:  txManager,
	}
}

func (s *Service) Instantiate(ctx context.Context, draft entities.ContractDraft) (*entities.Contract, error) {
	if err := s.validateDraft(draft); err != nil {
		return nil, err
	}

	tokenInfo, err := s.ledger.TokenInfo(ctx, draft.Token)
	if err != nil {
		return nil, fmt.Errorf("get token info: %w", err)
	}

	var created *entities.Contract
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		index, err := s.repository.NextAddressIndex(ctx)
		if err != nil {
			return fmt.Errorf("allocate address index: %w", err)
		}

		address, err := s.addresses.Derive(index)
		if err != nil {
			return fmt.Errorf("derive escrow address: %w", err)
		}

		created, err = s.repository.Create(ctx, entities.Contract{
			Address:          address,
			AddressIndex:     index,
			Owner:            draft.Owner,
			Status:           entities.InitialStatus,
			Token:            draft.Token,
			TokenInfo:        *tokenInfo,
			ConfirmPublicKey: draft.ConfirmPublicKey,
			PaymentAmount:    new(big.Int).Set(draft.PaymentAmount),
			DepositAmount:    new(big.Int).Set(draft.DepositAmount),
			Rough:            draft.Rough,
			Expiration:       draft.Expiration.WithDefaults(),
		})
		if err != nil {
			return fmt.Errorf("create contract: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Pay moves the payment from the owner to the escrow address. When the
// address already holds it the contract advances immediately.
func (s *Service) Pay(ctx context.Context, contractID uuid.UUID, caller string) (*entities.Outcome, error) {
	return s.act(ctx, contractID, caller, entities.ActionOwnerMadePayment, func(ctx context.Context, contract *entities.Contract) (*entities.Outcome, error) {
		if err := ensureStatus(contract, entities.StatusWaitPaymentBySender); err != nil {
			return nil, err
		}
		if err := ensureOwner(contract, caller); err != nil {
			return nil, err
		}

		available, err := s.available(ctx, contract)
		if err != nil {
			return nil, err
		}
		if available.Cmp(contract.PaymentAmount) >= 0 {
			return s.transition(ctx, contract, entities.StatusWaitForCourier, entities.ContractModify{})
		}

		if err := s.ensureNotRequested(ctx, contract.ID, entities.TagPaymentReceivedBySender); err != nil {
			return nil, err
		}
		return s.request(ctx, contract, entities.TagPaymentReceivedBySender, entities.TransferKindPull,
			contract.Owner, contract.Address, contract.PaymentAmount)
	})
}

func (s *Service) AcceptCourier(ctx context.Context, contractID uuid.UUID, caller string) (*entities.Outcome, error) {
	return s.act(ctx, contractID, caller, entities.ActionCourierAcceptedOrder, func(ctx context.Context, contract *entities.Contract) (*entities.Outcome, error) {
		if err := ensureStatus(contract, entities.StatusWaitForCourier); err != nil {
			return nil, err
		}
		if contract.Owner == caller {
			return nil, ErrOwnerCannotBeACourier
		}

		courier := caller
		return s.transition(ctx, contract, entities.StatusWaitDepositByCourier, entities.ContractModify{
			Courier: &courier,
		})
	})
}

// DepositCourierCollateral moves the courier's deposit to the escrow address.
// The details window opens only once the deposit is on the address.
func (s *Service) DepositCourierCollateral(ctx context.Context, contractID uuid.UUID, caller string) (*entities.Outcome, error) {
	return s.act(ctx, contractID, caller, entities.ActionCourierMadeDeposit, func(ctx context.Context, contract *entities.Contract) (*entities.Outcome, error) {
		if err := ensureStatus(contract, entities.StatusWaitDepositByCourier); err != nil {
			return nil, err
		}
		if err := ensureCourier(contract, caller); err != nil {
			return nil, err
		}

		if contract.DepositAmount.Sign() == 0 {
			return s.transition(ctx, contract, entities.StatusWaitSenderDetails, entities.ContractModify{})
		}
		available, err := s.available(ctx, contract)
		if err != nil {
			return nil, err
		}
		required := new(big.Int).Add(contract.PaymentAmount, contract.DepositAmount)
		if available.Cmp(required) >= 0 {
			return s.transition(ctx, contract, entities.StatusWaitSenderDetails, entities.ContractModify{})
		}

		if err := s.ensureNotRequested(ctx, contract.ID, entities.TagDepositReceivedByCourier); err != nil {
			return nil, err
		}
		return s.request(ctx, contract, entities.TagDepositReceivedByCourier, entities.TransferKindPull,
			caller, contract.Address, contract.DepositAmount)
	})
}

func (s *Service) SetDeliveryDetails(ctx context.Context, contractID uuid.UUID, caller string, details entities.DeliveryDetails) (*entities.Outcome, error) {
	if err := validateDetails(details); err != nil {
		return nil, err
	}

	return s.act(ctx, contractID, caller, entities.ActionSenderProvidedDetails, func(ctx context.Context, contract *entities.Contract) (*entities.Outcome, error) {
		if err := ensureStatus(contract, entities.StatusWaitSenderDetails); err != nil {
			return nil, err
		}
		if err := ensureOwner(contract, caller); err != nil {
			return nil, err
		}

		modify := entities.ContractModify{
			ExactFrom: &details.From,
			ExactTo:   &details.To,
		}
		if details.Comment != "" {
			modify.Comment = &details.Comment
		}
		return s.transition(ctx, contract, entities.StatusWaitCourierInDepartment, modify)
	})
}

func (s *Service) MarkParcelIssued(ctx context.Context, contractID uuid.UUID, caller string) (*entities.Outcome, error) {
	return s.act(ctx, contractID, caller, entities.ActionParcelGaveToCourier, func(ctx context.Context, contract *entities.Contract) (*entities.Outcome, error) {
		if err := ensureStatus(contract, entities.StatusWaitCourierInDepartment); err != nil {
			return nil, err
		}
		if err := ensureOwner(contract, caller); err != nil {
			return nil, err
		}
		if contract.Courier == nil {
			return nil, ErrCourierNotApplyYet
		}

		return s.transition(ctx, contract, entities.StatusInProgress, entities.ContractModify{})
	})
}

// ConfirmDelivery pays the courier the payment plus the returned deposit once
// the recipient's signature over the escrow address checks out.
func (s *Service) ConfirmDelivery(ctx context.Context, contractID uuid.UUID, caller, signatureHex string) (*entities.Outcome, error) {
	return s.act(ctx, contractID, caller, entities.ActionParcelDelivered, func(ctx context.Context, contract *entities.Contract) (*entities.Outcome, error) {
		if err := ensureStatus(contract, entities.StatusInProgress); err != nil {
			return nil, err
		}
		if err := ensureCourier(contract, caller); err != nil {
			return nil, err
		}
		if err := s.verifier.Verify([]byte(contract.Address), signatureHex, contract.ConfirmPublicKey); err != nil {
			return nil, fmt.Errorf("verify delivery confirmation: %w", err)
		}
		if err := s.ensureNotRequested(ctx, contract.ID, entities.TagPaymentToCourier); err != nil {
			return nil, err
		}

		payout := new(big.Int).Add(contract.PaymentAmount, contract.DepositAmount)
		return s.request(ctx, contract, entities.TagPaymentToCourier, entities.TransferKindPush,
			contract.Address, *contract.Courier, payout)
	})
}

type actionFn func(ctx context.Context, contract *entities.Contract) (*entities.Outcome, error)

// act runs fn on the locked contract inside one transaction and hands the
// requested transfers to the dispatcher after commit.
func (s *Service) act(ctx context.Context, contractID uuid.UUID, caller, action string, fn actionFn) (*entities.Outcome, error) {
	if !isValidContractID(contractID) {
		return nil, ErrInvalidContractID
	}
	if !isValidCaller(caller) {
		return nil, ErrUnauthorized
	}

	var outcome *entities.Outcome
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		contract, err := s.repository.GetByIDForUpdate(ctx, contractID)
		if err != nil {
			return fmt.Errorf("get contract: %w", err)
		}

		outcome, err = fn(ctx, contract)
		return err
	})
	if err != nil {
		return nil, err
	}

	ActionsTotal.WithLabelValues(action).Inc()
	if len(outcome.Transfers) > 0 {
		s.dispatcher.Dispatch(ctx, outcome.Transfers...)
	}
	return outcome, nil
}

// transition commits a status change. The expiration window always follows
// the target status: opened for deadline-bearing statuses, cleared otherwise.
func (s *Service) transition(
	ctx context.Context,
	contract *entities.Contract,
	to entities.ContractStatus,
	modify entities.ContractModify,
) (*entities.Outcome, error) {
	modify.ID = &contract.ID
	modify.Status = &to
	modify.Window = s.windows.Open(contract.Expiration, to, s.clock.Now())
	modify.ClearWindow = modify.Window == nil

	updated, err := s.repository.Update(ctx, modify)
	if err != nil {
		return nil, fmt.Errorf("update contract: %w", err)
	}

	StatusTransitionsTotal.WithLabelValues(contract.Status.String(), to.String()).Inc()
	return &entities.Outcome{Status: updated.Status}, nil
}

func (s *Service) request(
	ctx context.Context,
	contract *entities.Contract,
	tag entities.TransferTag,
	kind entities.TransferKind,
	from, to string,
	amount *big.Int,
) (*entities.Outcome, error) {
	transfer, err := s.createTransfer(ctx, contract, tag, kind, from, to, amount)
	if err != nil {
		return nil, err
	}
	return &entities.Outcome{
		Status:    contract.Status,
		Transfers: []entities.PendingTransfer{*transfer},
	}, nil
}

func (s *Service) createTransfer(
	ctx context.Context,
	contract *entities.Contract,
	tag entities.TransferTag,
	kind entities.TransferKind,
	from, to string,
	amount *big.Int,
) (*entities.PendingTransfer, error) {
	transfer, err := s.transfers.Create(ctx, entities.PendingTransfer{
		ContractID: contract.ID,
		Tag:        tag,
		Kind:       kind,
		Token:      contract.Token,
		From:       from,
		To:         to,
		Amount:     new(big.Int).Set(amount),
	})
	if err != nil {
		return nil, fmt.Errorf("create pending transfer %s: %w", tag, err)
	}
	return transfer, nil
}

func (s *Service) ensureNotRequested(ctx context.Context, contractID uuid.UUID, tag entities.TransferTag) error {
	exists, err := s.transfers.ExistsByContractAndTag(ctx, contractID, tag)
	if err != nil {
		return fmt.Errorf("check pending transfer %s: %w", tag, err)
	}
	if exists {
		return ErrAlreadyPaid
	}
	return nil
}

func (s *Service) inFlight(ctx context.Context, contractID uuid.UUID) (*entities.InFlight, error) {
	inFlight, err := s.transfers.InFlight(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("sum pending transfers: %w", err)
	}
	return inFlight, nil
}

// available is the escrow balance minus everything pending transfers may
// still add to or take from it.
func (s *Service) available(ctx context.Context, contract *entities.Contract) (*big.Int, error) {
	inFlight, err := s.inFlight(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	return s.netBalance(ctx, contract, inFlight)
}

func (s *Service) netBalance(ctx context.Context, contract *entities.Contract, inFlight *entities.InFlight) (*big.Int, error) {
	balance, err := s.ledger.Balance(ctx, contract.Token, contract.Address)
	if err != nil {
		return nil, fmt.Errorf("get escrow balance: %w", err)
	}
	return inFlight.Available(balance), nil
}
