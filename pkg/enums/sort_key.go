package enums

import "fmt"

// SortKey selects the ordering applied to catalog search results.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

var validSortKeys = []SortKey{
	SortRelevance,
	SortPriceAsc,
	SortPriceDesc,
	SortRating,
	SortNewest,
}

// String implements fmt.Stringer.
func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input means relevance.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortRelevance, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}
