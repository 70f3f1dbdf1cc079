package transfer

import (
	"time"

	"github.com/google/uuid"
)

type PendingTransferDB struct {
	ID           uuid.UUID
	ContractID   uuid.UUID
	Tag          int16
	Kind         string
	Token        string
	FromAddress  string
	ToAddress    string
	Amount       string
	CreatedAt    time.Time
	DispatchedAt *time.Time
}
