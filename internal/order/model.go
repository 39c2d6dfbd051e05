package order

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID                  uuid.UUID `json:"id"`
	UserID              int       `json:"userId"`
	Category            string    `json:"category"`
	ProductName         string    `json:"productName"`
	Quantity            int       `json:"quantity"`
	GrindLevel          *string   `json:"grindLevel,omitempty"`
	SpecialInstructions *string   `json:"specialInstructions,omitempty"`
	TokenAmount         float64   `json:"tokenAmount"`
	OrderStatus         Status    `json:"orderStatus"`
	CreatedAt           time.Time `json:"createdAt"`
}

// AdminOrder is an order joined with its owner, for admin listings.
type AdminOrder struct {
	Order
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

type CreateOrderInput struct {
	Category            string  `json:"category"`
	ProductName         string  `json:"productName"`
	Quantity            int     `json:"quantity"`
	GrindLevel          *string `json:"grindLevel"`
	SpecialInstructions *string `json:"specialInstructions"`
	TokenAmount         float64 `json:"tokenAmount"`
}
