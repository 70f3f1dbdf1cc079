package transfer_completed

import (
	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
	"github.com/google/uuid"
)

type transferCompletedEvent struct {
	TransferID string `json:"transfer_id"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

func (e transferCompletedEvent) toDomain() (entities.TransferResult, error) {
	id, err := uuid.Parse(e.TransferID)
	if err != nil {
		return entities.TransferResult{}, err
	}
	return entities.TransferResult{
		TransferID: id,
		Success:    e.Success,
		Error:      e.Error,
	}, nil
}
