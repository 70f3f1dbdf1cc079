package entities

import "time"

const (
	DefaultDepositExpiration      = 2 * time.Hour
	DefaultDetailsExpiration      = 2 * time.Hour
	DefaultInDepartmentExpiration = 24 * time.Hour
	DefaultDeliveryExpiration     = 7 * 24 * time.Hour
)

// ExpirationConfig holds how long each deadline-bearing status may last.
// It is fixed when the contract is created.
type ExpirationConfig struct {
	Deposit      time.Duration
	Details      time.Duration
	InDepartment time.Duration
	Delivery     time.Duration
}

func DefaultExpirationConfig() ExpirationConfig {
	return ExpirationConfig{
		Deposit:      DefaultDepositExpiration,
		Details:      DefaultDetailsExpiration,
		InDepartment: DefaultInDepartmentExpiration,
		Delivery:     DefaultDeliveryExpiration,
	}
}

// WithDefaults replaces zero durations with their defaults.
func (c ExpirationConfig) WithDefaults() ExpirationConfig {
	d := DefaultExpirationConfig()
	if c.Deposit == 0 {
		c.Deposit = d.Deposit
	}
	if c.Details == 0 {
		c.Details = d.Details
	}
	if c.InDepartment == 0 {
		c.InDepartment = d.InDepartment
	}
	if c.Delivery == 0 {
		c.Delivery = d.Delivery
	}
	return c
}

func (c ExpirationConfig) ForStatus(status ContractStatus) (time.Duration, bool) {
	switch status {
	case StatusWaitDepositByCourier:
		return c.Deposit, true
	case StatusWaitSenderDetails:
		return c.Details, true
	case StatusWaitCourierInDepartment:
		return c.InDepartment, true
	case StatusInProgress:
		return c.Delivery, true
	}
	return 0, false
}

type ExpirationWindow struct {
	FixedAt  time.Time
	Duration time.Duration
}

func (w ExpirationWindow) ExpiresAt() time.Time {
	return w.FixedAt.Add(w.Duration)
}

// IsOver is false strictly before FixedAt+Duration and true from that instant on.
func (w ExpirationWindow) IsOver(now time.Time) bool {
	return !now.Before(w.ExpiresAt())
}
