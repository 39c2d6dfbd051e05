package payment

import "time"

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
)

// Payment is one row per provider order, keyed by the provider's order id.
type Payment struct {
	OrderID   string    `json:"orderId"`
	PaymentID *string   `json:"paymentId,omitempty"`
	Signature *string   `json:"signature,omitempty"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProviderOrder is the payment intent created on the provider side. Amount is
// in minor units (paise).
type ProviderOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
