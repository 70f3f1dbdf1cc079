package settlement

import "errors"

var (
	ErrInvalidTransferID       = errors.New("invalid transfer id")
	ErrTransferFailed          = errors.New("ledger rejected transfer")
	ErrPendingTransferNotFound = errors.New("pending transfer not found")
	ErrUnknownTransferTag      = errors.New("unknown transfer tag")
)
