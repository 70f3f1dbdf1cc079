package transfer_completed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/escrow"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/settlement"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
	"github.com/IBM/sarama"
)

const releaseTimeout = 2 * time.Second

type Handler struct {
	settlementService        Service
	dedup                    Deduplicator
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, settlementService Service, dedup Deduplicator, timeout time.Duration) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "transfer.completed"),
	)

	return &Handler{
		settlementService:        settlementService,
		dedup:                    dedup,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("transfer.completed: claim messages closed, exiting ConsumeClaim")
				return nil
			}

			if h.messageProcessing(sess, message) {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("transfer.completed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing returns true when ConsumeClaim must stop and leave the
// message for redelivery.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event transferCompletedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("transfer.completed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	result, err := event.toDomain()
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("transfer_id", event.TransferID),
			logger.NewField("offset", message.Offset),
		).Error("transfer.completed handler received malformed transfer id")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("transfer_id", result.TransferID.String()),
		logger.NewField("success", result.Success),
		logger.NewField("offset", message.Offset),
	)

	if result.Success {
		acquired, err := h.dedup.Acquire(ctx, result.TransferID)
		switch {
		case err != nil:
			// the pending transfer row still rejects a second settlement
			msgLog.With(
				logger.NewField("error", err),
			).Warn("transfer.completed dedup unavailable, processing anyway")
		case !acquired:
			msgLog.Info("transfer.completed duplicate skipped")
			sess.MarkMessage(message, "")
			return false
		}
	}

	msgLog.Info("transfer.completed processing")

	transfer, err := h.settlementService.ProcessTransferResult(ctx, result)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			h.release(sess.Context(), msgLog, result)
			msgLog.With(
				logger.NewField("error", err),
			).Warn("transfer.completed handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, settlement.ErrTransferFailed):
			h.logRejected(msgLog, transfer, err)

		case errors.Is(err, settlement.ErrPendingTransferNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("transfer.completed no pending transfer, already settled")

		case errors.Is(err, escrow.ErrUnexpectedStatus):
			msgLog.With(
				logger.NewField("error", err),
			).Error("transfer.completed contract moved on before settlement")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("transfer.completed handler failed to settle transfer")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("contract", transfer.ContractID.String()),
		logger.NewField("tag", transfer.Tag.String()),
	).Info("transfer.completed: settled")

	sess.MarkMessage(message, "")
	return false
}

// logRejected reports a transfer the ledger refused. A refused refund leaves
// funds on the escrow address and needs an operator.
func (h *Handler) logRejected(log logger.Logger, transfer *entities.PendingTransfer, err error) {
	if transfer == nil {
		log.With(
			logger.NewField("error", err),
		).Warn("transfer.completed ledger rejected transfer, contract unchanged")
		return
	}

	log = log.With(
		logger.NewField("error", err),
		logger.NewField("contract", transfer.ContractID.String()),
		logger.NewField("tag", transfer.Tag.String()),
	)
	if transfer.Tag.IsRefund() {
		log.Error("transfer.completed ledger rejected refund, funds stay on escrow address")
		return
	}
	log.Warn("transfer.completed ledger rejected transfer, action may be requested again")
}

func (h *Handler) release(ctx context.Context, log logger.Logger, result entities.TransferResult) {
	if !result.Success {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	if err := h.dedup.Release(ctx, result.TransferID); err != nil {
		log.With(
			logger.NewField("error", err),
		).Warn("transfer.completed dedup release failed, redelivery will be skipped")
	}
}
