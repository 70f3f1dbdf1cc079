package entities

type Role string

const (
	RoleOwner   Role = "owner"
	RoleCourier Role = "courier"
)

func (r Role) String() string {
	return string(r)
}

type RefundReceiver string

const (
	RefundOwner   RefundReceiver = "owner"
	RefundCourier RefundReceiver = "courier"
	RefundBoth    RefundReceiver = "both"
	RefundNoOne   RefundReceiver = "no_one"
)

type AfterRefund string

const (
	AfterRefundSetFailed AfterRefund = "set_failed"
	AfterRefundSetClosed AfterRefund = "set_closed"
	AfterRefundStartOver AfterRefund = "start_over"
)

// Status returns the status the contract moves to after a cancellation.
func (a AfterRefund) Status() ContractStatus {
	switch a {
	case AfterRefundSetFailed:
		return StatusFailed
	case AfterRefundSetClosed:
		return StatusClosed
	default:
		return StatusWaitForCourier
	}
}

func (a AfterRefund) Action() string {
	switch a {
	case AfterRefundSetFailed:
		return ActionCancelFailed
	case AfterRefundSetClosed:
		return ActionCancelClosed
	default:
		return ActionCancelStartOver
	}
}
