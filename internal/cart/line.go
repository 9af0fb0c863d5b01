package cart

import (
	"github.com/shopspring/decimal"

	"github.com/tahweela/tahweela-backend/internal/catalog"
	"github.com/tahweela/tahweela-backend/pkg/types"
)

// Line is one cart entry. ProductID plus Specifications is its identity.
type Line struct {
	ProductID      string               `json:"product_id"`
	SupplierID     string               `json:"supplier_id"`
	Quantity       int                  `json:"quantity"`
	Specifications types.Specifications `json:"specifications,omitempty"`
	Product        *catalog.Product     `json:"product,omitempty"`
}

// Matches reports whether the line has the given identity. Supplier and
// position never take part; nil and empty specifications are equal.
func (l Line) Matches(productID string, specs types.Specifications) bool {
	return l.ProductID == productID && l.Specifications.Equal(specs)
}

// UnitPrice is the snapshot price, or zero when no snapshot was captured.
func (l Line) UnitPrice() decimal.Decimal {
	if l.Product == nil {
		return decimal.Zero
	}
	return l.Product.Price
}

// Subtotal is UnitPrice times Quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Clone deep-copies the line so callers cannot reach store state.
func (l Line) Clone() Line {
	out := l
	out.Specifications = l.Specifications.Clone()
	if l.Product != nil {
		p := l.Product.Clone()
		out.Product = &p
	}
	return out
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, line := range lines {
		out[i] = line.Clone()
	}
	return out
}
