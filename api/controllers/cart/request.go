package cart

import "github.com/tahweela/tahweela-backend/pkg/types"

type addItemRequest struct {
	ProductID      string               `json:"product_id" validate:"required,max=64"`
	Quantity       *int                 `json:"quantity,omitempty" validate:"omitempty,min=1,max=1000000"`
	Specifications types.Specifications `json:"specifications,omitempty"`
}

// Quantity may be zero or negative, which removes the line.
type updateItemRequest struct {
	ProductID      string               `json:"product_id" validate:"required,max=64"`
	Quantity       *int                 `json:"quantity" validate:"required,max=1000000"`
	Specifications types.Specifications `json:"specifications,omitempty"`
}

type removeItemRequest struct {
	ProductID      string               `json:"product_id" validate:"required,max=64"`
	Specifications types.Specifications `json:"specifications,omitempty"`
}

type setOpenRequest struct {
	Open *bool `json:"open" validate:"required"`
}

func (r addItemRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}
