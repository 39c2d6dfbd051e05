package address

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"userId"`
	HouseFlatNo string    `json:"houseFlatNo"`
	Landmark    string    `json:"landmark"`
	Street      string    `json:"street"`
	Area        string    `json:"area"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Pincode     string    `json:"pincode"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AddressInput struct {
	HouseFlatNo string `json:"houseFlatNo"`
	Landmark    string `json:"landmark"`
	Street      string `json:"street"`
	Area        string `json:"area"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	IsDefault   bool   `json:"isDefault"`
}

// Complete reports whether all seven required address fields are present.
func (in AddressInput) Complete() bool {
	return in.HouseFlatNo != "" && in.Landmark != "" && in.Street != "" &&
		in.Area != "" && in.City != "" && in.State != "" && in.Pincode != ""
}
