package httperr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Boring-Software-Nation/figaro-contract/internal/service/escrow"
	"github.com/Boring-Software-Nation/figaro-contract/pkg/logger"
)

type errorLogger interface {
	With(fields ...logger.Field) logger.Logger
}

type response struct {
	Error string `json:"error"`
}

func Status(err error) int {
	switch {
	case errors.Is(err, escrow.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, escrow.ErrOwnerExpected),
		errors.Is(err, escrow.ErrCourierExpected),
		errors.Is(err, escrow.ErrOwnerOrCourierExpected),
		errors.Is(err, escrow.ErrOwnerCannotBeACourier):
		return http.StatusForbidden

	case errors.Is(err, escrow.ErrUnexpectedStatus),
		errors.Is(err, escrow.ErrAlreadyPaid),
		errors.Is(err, escrow.ErrTransferInFlight),
		errors.Is(err, escrow.ErrCourierNotApplyYet):
		return http.StatusConflict

	case errors.Is(err, escrow.ErrMissingRequiredFields),
		errors.Is(err, escrow.ErrInvalidContractID),
		errors.Is(err, escrow.ErrInvalidAddress),
		errors.Is(err, escrow.ErrInvalidAmount),
		errors.Is(err, escrow.ErrInvalidExpiration),
		errors.Is(err, escrow.ErrInvalidPublicKey),
		errors.Is(err, escrow.ErrInvalidSignature):
		return http.StatusBadRequest

	case errors.Is(err, escrow.ErrContractNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// Write answers with the status Status picks. Internal errors are logged and
// their text is not sent to the client.
func Write(w http.ResponseWriter, log errorLogger, err error) {
	status := Status(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.With(
			logger.NewField("error", err),
		).Error("request failed")
		message = http.StatusText(status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Error: message})
}
