package productorder

import "errors"

var (
	ErrOrderNotFound   = errors.New("product order not found")
	ErrUnauthenticated = errors.New("unauthenticated")
)
