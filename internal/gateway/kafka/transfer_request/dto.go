package transfer_request

import "github.com/Boring-Software-Nation/figaro-contract/internal/entities"

type transferRequestedEvent struct {
	TransferID string `json:"transfer_id"`
	ContractID string `json:"contract_id"`
	Tag        int    `json:"tag"`
	Kind       string `json:"kind"`
	Token      string `json:"token"`
	From       string `json:"from"`
	To         string `json:"to"`
	Amount     string `json:"amount"`
}

func fromDomain(request entities.TransferRequest) transferRequestedEvent {
	return transferRequestedEvent{
		TransferID: request.TransferID,
		ContractID: request.ContractID,
		Tag:        int(request.Tag),
		Kind:       string(request.Kind),
		Token:      request.Token,
		From:       request.From,
		To:         request.To,
		Amount:     request.Amount,
	}
}
