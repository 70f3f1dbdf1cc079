package entities

// Action names recorded for every accepted operation.
const (
	ActionOwnerMadePayment      = "owner_made_payment"
	ActionCourierAcceptedOrder  = "courier_accepted_order"
	ActionCourierMadeDeposit    = "courier_made_deposit"
	ActionSenderProvidedDetails = "sender_provided_details"
	ActionParcelGaveToCourier   = "parcel_gave_to_courier"
	ActionParcelDelivered       = "parcel_delivered"
	ActionCancelClosed          = "cancel.closed"
	ActionCancelFailed          = "cancel.failed"
	ActionCancelStartOver       = "cancel.start_over"
	ActionRefundCompleted       = "refund_completed"
)
