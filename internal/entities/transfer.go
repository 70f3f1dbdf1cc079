package entities

import (
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TransferTag tells the settlement side which effect to apply once the
// ledger confirms a transfer. Values are part of the wire format.
type TransferTag int

const (
	TagPaymentReceivedBySender  TransferTag = 1
	TagDepositReceivedByCourier TransferTag = 2
	TagPaymentToCourier         TransferTag = 3
	TagOwnerRefund              TransferTag = 4
	TagCourierRefund            TransferTag = 5
)

func (t TransferTag) String() string {
	switch t {
	case TagPaymentReceivedBySender:
		return "payment_received_by_sender"
	case TagDepositReceivedByCourier:
		return "deposit_received_by_courier"
	case TagPaymentToCourier:
		return "payment_to_courier"
	case TagOwnerRefund:
		return "owner_refund"
	case TagCourierRefund:
		return "courier_refund"
	}
	return "unknown(" + strconv.Itoa(int(t)) + ")"
}

func (t TransferTag) IsValid() bool {
	return t >= TagPaymentReceivedBySender && t <= TagCourierRefund
}

// IsRefund reports whether the tag returns funds to a participant. Refunds
// are the only transfers a contract may have several of at once.
func (t TransferTag) IsRefund() bool {
	return t == TagOwnerRefund || t == TagCourierRefund
}

type TransferKind string

const (
	// TransferKindPull moves funds from a participant into the escrow address.
	TransferKindPull TransferKind = "pull"
	// TransferKindPush moves funds from the escrow address to a receiver.
	TransferKindPush TransferKind = "push"
)

type PendingTransfer struct {
	ID           uuid.UUID
	ContractID   uuid.UUID
	Tag          TransferTag
	Kind         TransferKind
	Token        string
	From         string
	To           string
	Amount       *big.Int
	CreatedAt    time.Time
	DispatchedAt *time.Time
}

func (p PendingTransfer) Request() TransferRequest {
	return TransferRequest{
		TransferID: p.ID.String(),
		ContractID: p.ContractID.String(),
		Tag:        p.Tag,
		Kind:       p.Kind,
		Token:      p.Token,
		From:       p.From,
		To:         p.To,
		Amount:     FormatAmount(p.Amount),
	}
}

// InFlight sums the transfers of one contract the ledger has not confirmed
// yet. Pulls may already sit on the escrow address while their confirmation
// is still on its way; payouts and refunds may already have left it.
type InFlight struct {
	Pulls   *big.Int
	Payouts *big.Int
	Refunds *big.Int
}

func NoneInFlight() InFlight {
	return InFlight{Pulls: new(big.Int), Payouts: new(big.Int), Refunds: new(big.Int)}
}

// Settling is true while a pull or a courier payout waits for the ledger.
func (f InFlight) Settling() bool {
	return f.Pulls.Sign() > 0 || f.Payouts.Sign() > 0
}

// Available is the part of balance no pending transfer can claim, never
// below zero.
func (f InFlight) Available(balance *big.Int) *big.Int {
	available := new(big.Int).Set(balance)
	available.Sub(available, f.Pulls)
	available.Sub(available, f.Payouts)
	available.Sub(available, f.Refunds)
	if available.Sign() < 0 {
		available.SetInt64(0)
	}
	return available
}

type TransferRequest struct {
	TransferID string
	ContractID string
	Tag        TransferTag
	Kind       TransferKind
	Token      string
	From       string
	To         string
	Amount     string
}

type TransferResult struct {
	TransferID uuid.UUID
	Success    bool
	Error      string
}
