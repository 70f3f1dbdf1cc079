package contract_post

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/dto"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/httperr"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/middlewares/caller"
	"github.com/Boring-Software-Nation/figaro-contract/internal/service/escrow"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "contract_post"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var contractDTO dto.ContractCreate
	err := json.NewDecoder(r.Body).Decode(&contractDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	draft, err := toDraft(caller.FromContext(r.Context()), contractDTO)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	contract, err := h.service.Instantiate(r.Context(), draft)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	response := dto.ContractCreateResponse{
		ID:      contract.ID.String(),
		Address: contract.Address,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func toDraft(owner string, contractDTO dto.ContractCreate) (entities.ContractDraft, error) {
	if contractDTO.PaymentAmount == "" || contractDTO.DepositAmount == "" {
		return entities.ContractDraft{}, escrow.ErrMissingRequiredFields
	}

	payment, err := entities.ParseAmount(contractDTO.PaymentAmount)
	if err != nil {
		return entities.ContractDraft{}, fmt.Errorf("%w: payment: %v", escrow.ErrInvalidAmount, err)
	}
	deposit, err := entities.ParseAmount(contractDTO.DepositAmount)
	if err != nil {
		return entities.ContractDraft{}, fmt.Errorf("%w: deposit: %v", escrow.ErrInvalidAmount, err)
	}

	return entities.ContractDraft{
		Owner:            owner,
		Token:            contractDTO.Token,
		ConfirmPublicKey: contractDTO.ConfirmPublicKey,
		PaymentAmount:    payment,
		DepositAmount:    deposit,
		Rough:            entities.Direction(contractDTO.Rough),
		Expiration:       contractDTO.Expiration.ToDomain(),
	}, nil
}
