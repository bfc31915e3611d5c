package domain

type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]bool{
	StatusPending:        true,
	StatusConfirmed:      true,
	StatusPreparing:      true,
	StatusReady:          true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
	StatusCancelled:      true,
}

func (s OrderStatus) Valid() bool { return orderStatuses[s] }

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

var paymentStatuses = map[PaymentStatus]bool{
	PaymentPending:  true,
	PaymentPaid:     true,
	PaymentFailed:   true,
	PaymentRefunded: true,
}

func (s PaymentStatus) Valid() bool { return paymentStatuses[s] }
