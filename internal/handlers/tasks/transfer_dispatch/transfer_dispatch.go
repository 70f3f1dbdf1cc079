package transfer_dispatch

import (
	"context"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
)

// TransferDispatch republishes transfer requests whose inline dispatch after
// commit did not go through.
type TransferDispatch struct {
	log      taskLogger
	service  Service
	interval time.Duration
}

func NewTransferDispatch(log taskLogger, service Service, interval time.Duration) *TransferDispatch {
	return &TransferDispatch{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (d *TransferDispatch) TTL() time.Duration {
	return d.interval
}

func (d *TransferDispatch) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, d.interval)
	defer cancel()

	dispatched, err := d.service.DispatchPending(ctxWithTimeout)

	if dispatched > 0 {
		d.log.With(
			logger.NewField("dispatched_transfers", dispatched),
		).Info("transfer dispatch")
	}

	return err
}

func (d *TransferDispatch) Info() string {
	return "transfer dispatch"
}
