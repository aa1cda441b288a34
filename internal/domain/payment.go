package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentMethodWallet   PaymentMethod = "WALLET"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "BANK_TRANSFER"
)

type Payment struct {
	ID          int32         `json:"id"`
	BookingID   int32         `json:"booking_id"`
	PayerID     int32         `json:"payer_id"`
	Reference   string        `json:"reference"`
	Amount      int64         `json:"amount"`
	PlatformFee int64         `json:"platform_fee"`
	OwnerAmount int64         `json:"owner_amount"`
	Method      PaymentMethod `json:"method"`
	Status      PaymentStatus `json:"status"`
	CreatedOn   time.Time     `json:"created_on"`
	UpdatedOn   time.Time     `json:"updated_on"`
}
