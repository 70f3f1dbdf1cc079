package entities

type ContractStatus string

const (
	StatusWaitPaymentBySender     ContractStatus = "wait_payment_by_sender"
	StatusWaitForCourier          ContractStatus = "wait_for_courier"
	StatusWaitDepositByCourier    ContractStatus = "wait_deposit_by_courier"
	StatusWaitSenderDetails       ContractStatus = "wait_sender_details"
	StatusWaitCourierInDepartment ContractStatus = "wait_courier_in_department"
	StatusInProgress              ContractStatus = "in_progress"
	StatusDelivered               ContractStatus = "delivered"
	StatusFailed                  ContractStatus = "failed"
	StatusClosed                  ContractStatus = "closed"
)

const InitialStatus = StatusWaitPaymentBySender

func (s ContractStatus) String() string {
	return string(s)
}

func (s ContractStatus) IsValid() bool {
	switch s {
	case StatusWaitPaymentBySender,
		StatusWaitForCourier,
		StatusWaitDepositByCourier,
		StatusWaitSenderDetails,
		StatusWaitCourierInDepartment,
		StatusInProgress,
		StatusDelivered,
		StatusFailed,
		StatusClosed:
		return true
	}
	return false
}

// IsTerminal reports whether no further action is accepted in s.
func (s ContractStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusClosed
}

// HasDeadline reports whether s carries an expiration window.
func (s ContractStatus) HasDeadline() bool {
	switch s {
	case StatusWaitDepositByCourier,
		StatusWaitSenderDetails,
		StatusWaitCourierInDepartment,
		StatusInProgress:
		return true
	}
	return false
}
