package dto

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type Direction struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ExpirationSeconds overrides the status deadlines. Zero or missing fields
// keep their defaults.
type ExpirationSeconds struct {
	Deposit      int64 `json:"deposit"`
	Details      int64 `json:"details"`
	InDepartment int64 `json:"in_department"`
	Delivery     int64 `json:"delivery"`
}

type ContractCreate struct {
	Rough            Direction          `json:"rough"`
	Token            string             `json:"token"`
	ConfirmPublicKey string             `json:"confirm_public_key"`
	PaymentAmount    string             `json:"payment_amount"`
	DepositAmount    string             `json:"deposit_amount"`
	Expiration       *ExpirationSeconds `json:"expiration,omitempty"`
}

type ContractCreateResponse struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

type ActionResponse struct {
	OK               bool     `json:"ok"`
	Status           string   `json:"status"`
	PendingTransfers []string `json:"pending_transfers"`
}

type DeliveryDetails struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Comment string `json:"comment"`
}

type DeliveryConfirm struct {
	Signature string `json:"signature"`
}

type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type CourierResponse struct {
	Courier string `json:"courier"`
}

type FundsResponse struct {
	Deposit string `json:"deposit"`
	Payment string `json:"payment"`
}

type LocationsResponse struct {
	Exact   Direction `json:"exact"`
	Rough   Direction `json:"rough"`
	Comment string    `json:"comment"`
}

type TokenResponse struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint32 `json:"decimals"`
	TotalSupply string `json:"total_supply"`
}
