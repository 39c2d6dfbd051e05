package productorder

import (
	"time"

	"roastery-be/internal/order"

	"github.com/google/uuid"
)

// ProductOrder snapshots the catalog product at creation time; later product
// edits never touch existing rows.
type ProductOrder struct {
	ID          uuid.UUID    `json:"id"`
	UserID      int          `json:"userId"`
	ProductID   uuid.UUID    `json:"productId"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Price       float64      `json:"price"`
	Quantity    int          `json:"quantity"`
	OrderStatus order.Status `json:"orderStatus"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// AdminProductOrder is a product order joined with its owner.
type AdminProductOrder struct {
	ProductOrder
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

type CreateInput struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}
