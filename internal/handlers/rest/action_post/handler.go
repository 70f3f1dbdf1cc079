package action_post

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/dto"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/httperr"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/middlewares/caller"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Action is a contract operation that takes nothing but the caller.
type Action func(ctx context.Context, contractID uuid.UUID, caller string) (*entities.Outcome, error)

// Handler serves the body-less contract actions: pay, accept, deposit, issue.
type Handler struct {
	log    handlerLogger
	action Action
}

func New(log handlerLogger, name string, action Action) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", name),
	)

	return &Handler{
		log:    handlerLog,
		action: action,
	}
}

func NewPay(log handlerLogger, service Service) *Handler {
	return New(log, "pay_post", service.Pay)
}

func NewAccept(log handlerLogger, service Service) *Handler {
	return New(log, "courier_accept_post", service.AcceptCourier)
}

func NewDeposit(log handlerLogger, service Service) *Handler {
	return New(log, "deposit_post", service.DepositCourierCollateral)
}

func NewIssue(log handlerLogger, service Service) *Handler {
	return New(log, "parcel_issue_post", service.MarkParcelIssued)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	contractID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	outcome, err := h.action(r.Context(), contractID, caller.FromContext(r.Context()))
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromOutcome(outcome))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
