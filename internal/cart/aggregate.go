package cart

import "github.com/shopspring/decimal"

// SupplierGroup is the slice of cart lines sold by one supplier.
type SupplierGroup struct {
	SupplierID string          `json:"supplier_id"`
	Lines      []Line          `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	ItemCount  int             `json:"item_count"`
}

// Summary is the derived view of a cart snapshot.
type Summary struct {
	Lines     []Line          `json:"lines"`
	Groups    []SupplierGroup `json:"supplier_groups"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	IsOpen    bool            `json:"is_open"`
}

// Total sums snapshot price times quantity. Lines without a snapshot add zero.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// ItemCount sums quantities across lines.
func ItemCount(lines []Line) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// SupplierGroups partitions lines by supplier. Groups follow the first
// appearance of each supplier and lines keep their cart order.
func SupplierGroups(lines []Line) []SupplierGroup {
	groups := make([]SupplierGroup, 0)
	index := make(map[string]int)
	for _, line := range lines {
		idx, ok := index[line.SupplierID]
		if !ok {
			idx = len(groups)
			index[line.SupplierID] = idx
			groups = append(groups, SupplierGroup{SupplierID: line.SupplierID, Subtotal: decimal.Zero})
		}
		group := &groups[idx]
		group.Lines = append(group.Lines, line)
		group.Subtotal = group.Subtotal.Add(line.Subtotal())
		group.ItemCount += line.Quantity
	}
	return groups
}

// GroupMap is the keyed view of SupplierGroups.
func GroupMap(lines []Line) map[string][]Line {
	grouped := make(map[string][]Line)
	for _, line := range lines {
		grouped[line.SupplierID] = append(grouped[line.SupplierID], line)
	}
	return grouped
}

// Summarize computes every derived value from one snapshot.
func Summarize(lines []Line) Summary {
	return Summary{
		Lines:     lines,
		Groups:    SupplierGroups(lines),
		Total:     Total(lines),
		ItemCount: ItemCount(lines),
	}
}
