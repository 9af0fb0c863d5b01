package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tahweela/tahweela-backend/pkg/enums"
	"github.com/tahweela/tahweela-backend/pkg/pagination"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

// Filters describe the supported knobs for product search. Zero values are no-ops.
type Filters struct {
	Query        string           `json:"query,omitempty"`
	Category     string           `json:"category,omitempty"`
	Subcategory  string           `json:"subcategory,omitempty"`
	MinPrice     *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice     *decimal.Decimal `json:"max_price,omitempty"`
	Location     string           `json:"location,omitempty"`
	VerifiedOnly bool             `json:"verified,omitempty"`
	MinRating    *float64         `json:"rating,omitempty"`
	SortBy       enums.SortKey    `json:"sort_by,omitempty"`
	Page         int              `json:"page,omitempty"`
	Limit        int              `json:"limit,omitempty"`
}

// SearchResult is one page of matches plus the size of the full filtered set.
type SearchResult struct {
	Items      []Product `json:"items"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

// Search filters, sorts and paginates products using the package default limits.
func Search(products []Product, f Filters) SearchResult {
	return SearchWith(products, f, pagination.DefaultLimit, pagination.MaxLimit)
}

// SearchWith is Search with caller-provided limit bounds. The input is not modified.
func SearchWith(products []Product, f Filters, defaultLimit, maxLimit int) SearchResult {
	matches := make([]Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			matches = append(matches, p)
		}
	}

	sortProducts(matches, f.SortBy)

	total := len(matches)
	win := pagination.ResolveWith(pagination.Params{Page: f.Page, Limit: f.Limit}, total, defaultLimit, maxLimit)

	items := make([]Product, 0, win.End-win.Start)
	for _, p := range matches[win.Start:win.End] {
		items = append(items, p.Clone())
	}

	return SearchResult{
		Items:      items,
		TotalCount: total,
		Page:       win.Page,
		Limit:      win.Limit,
		TotalPages: pagination.TotalPages(total, win.Limit),
	}
}

func (f Filters) matches(p Product) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !matchesQuery(p, q) {
		return false
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, CategoryAll) && !strings.EqualFold(p.Category, c) {
		return false
	}
	if s := strings.TrimSpace(f.Subcategory); s != "" && !strings.EqualFold(p.Subcategory, s) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" {
		if p.Supplier == nil || !strings.Contains(strings.ToLower(p.Supplier.Location), loc) {
			return false
		}
	}
	if f.VerifiedOnly && (p.Supplier == nil || !p.Supplier.Verified) {
		return false
	}
	if f.MinRating != nil && p.supplierRating() < *f.MinRating {
		return false
	}
	return true
}

func matchesQuery(p Product, q string) bool {
	fields := []string{p.Name, p.Description, p.NameAr, p.DescriptionAr}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// sortProducts orders in place. Ties keep their incoming order.
func sortProducts(products []Product, key enums.SortKey) {
	var less func(a, b Product) bool
	switch key {
	case enums.SortPriceAsc:
		less = func(a, b Product) bool { return a.Price.LessThan(b.Price) }
	case enums.SortPriceDesc:
		less = func(a, b Product) bool { return a.Price.GreaterThan(b.Price) }
	case enums.SortRating:
		less = func(a, b Product) bool { return a.supplierRating() > b.supplierRating() }
	case enums.SortNewest:
		less = func(a, b Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}
