package payment

import "errors"

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrSignatureMismatch = errors.New("signature mismatch")
)
