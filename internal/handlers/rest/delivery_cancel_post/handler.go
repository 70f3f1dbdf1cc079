package delivery_cancel_post

import (
	"encoding/json"
	"net/http"

	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/dto"
	"github.com/Boring-Software-Nation/figaro-contract/internal/handlers/rest/httperr"
	"github.com/Boring-Software-Nation/figaro-contract/internal/pkg/middlewares/caller"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "delivery_cancel_post"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP answers 200 either way. A cancellation the rules do not allow
// is reported as cancelled=false.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	contractID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cancelled, err := h.service.CancelDelivery(r.Context(), contractID, caller.FromContext(r.Context()))
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.CancelResponse{Cancelled: cancelled})
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
