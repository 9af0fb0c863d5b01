package cart

import (
	"github.com/tahweela/tahweela-backend/internal/catalog"
	"github.com/tahweela/tahweela-backend/pkg/types"
)

// Store holds the ordered cart lines. It is not safe for concurrent use;
// Controller serializes access.
type Store struct {
	lines []Line
}

func (s *Store) indexOf(productID string, specs types.Specifications) int {
	for i, line := range s.lines {
		if line.Matches(productID, specs) {
			return i
		}
	}
	return -1
}

// MaxLineQuantity bounds the quantity a single line can hold.
const MaxLineQuantity = 1_000_000

// add merges into an existing line by summing quantities, otherwise appends.
// It reports false without mutating when the line would exceed MaxLineQuantity.
func (s *Store) add(product catalog.Product, quantity int, specs types.Specifications) bool {
	if quantity > MaxLineQuantity {
		return false
	}
	if idx := s.indexOf(product.ID, specs); idx >= 0 {
		if s.lines[idx].Quantity > MaxLineQuantity-quantity {
			return false
		}
		s.lines[idx].Quantity += quantity
		return true
	}
	snapshot := product.Clone()
	s.lines = append(s.lines, Line{
		ProductID:      product.ID,
		SupplierID:     product.SupplierID,
		Quantity:       quantity,
		Specifications: specs.Clone(),
		Product:        &snapshot,
	})
	return true
}

func (s *Store) remove(productID string, specs types.Specifications) bool {
	idx := s.indexOf(productID, specs)
	if idx < 0 {
		return false
	}
	s.lines = append(s.lines[:idx:idx], s.lines[idx+1:]...)
	return true
}

// setQuantity assigns an absolute quantity capped at MaxLineQuantity;
// non-positive values remove the line.
func (s *Store) setQuantity(productID string, quantity int, specs types.Specifications) bool {
	if quantity <= 0 {
		return s.remove(productID, specs)
	}
	quantity = min(quantity, MaxLineQuantity)
	idx := s.indexOf(productID, specs)
	if idx < 0 {
		return false
	}
	s.lines[idx].Quantity = quantity
	return true
}

func (s *Store) clear() {
	s.lines = nil
}

func (s *Store) replace(lines []Line) {
	s.lines = normalize(lines)
}

func (s *Store) snapshot() []Line {
	return cloneLines(s.lines)
}

func (s *Store) len() int {
	return len(s.lines)
}

// normalize drops lines that could never be stored (no product or non-positive
// quantity) and merges duplicate identities, keeping first-appearance order.
// Merged quantities are capped at MaxLineQuantity.
func normalize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			continue
		}
		line.Quantity = min(line.Quantity, MaxLineQuantity)
		merged := false
		for i := range out {
			if out[i].Matches(line.ProductID, line.Specifications) {
				out[i].Quantity = min(out[i].Quantity, MaxLineQuantity-line.Quantity) + line.Quantity
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, line.Clone())
		}
	}
	return out
}
