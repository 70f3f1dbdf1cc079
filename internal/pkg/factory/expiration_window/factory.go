package expiration_window

import (
	"time"

	"github.com/Boring-Software-Nation/figaro-contract/internal/entities"
)

type WindowFactory struct{}

func New() *WindowFactory {
	return &WindowFactory{}
}

// Open starts the window a contract entering status gets, fixed at baseTime.
// Statuses without a deadline get nil.
func (f *WindowFactory) Open(cfg entities.ExpirationConfig, status entities.ContractStatus, baseTime time.Time) *entities.ExpirationWindow {
	duration, ok := cfg.WithDefaults().ForStatus(status)
	if !ok {
		return nil
	}

	return &entities.ExpirationWindow{
		FixedAt:  baseTime.UTC(),
		Duration: duration,
	}
}
