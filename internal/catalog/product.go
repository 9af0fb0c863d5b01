package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tahweela/tahweela-backend/pkg/enums"
)

// Supplier is the seller summary attached to catalog products.
type Supplier struct {
	ID            string  `json:"id"`
	CompanyName   string  `json:"company_name"`
	CompanyNameAr string  `json:"company_name_ar,omitempty"`
	Category      string  `json:"category,omitempty"`
	Location      string  `json:"location"`
	Verified      bool    `json:"verified"`
	Rating        float64 `json:"rating"`
	TotalReviews  int     `json:"total_reviews"`
}

// Product is a wholesale listing. Values handed out by the catalog are copies.
type Product struct {
	ID                 string                   `json:"id"`
	SupplierID         string                   `json:"supplier_id"`
	Name               string                   `json:"name"`
	NameAr             string                   `json:"name_ar"`
	Description        string                   `json:"description"`
	DescriptionAr      string                   `json:"description_ar"`
	Category           string                   `json:"category"`
	Subcategory        string                   `json:"subcategory,omitempty"`
	Price              decimal.Decimal          `json:"price"`
	Currency           enums.Currency           `json:"currency"`
	MinOrderQuantity   int                      `json:"min_order_quantity"`
	Unit               string                   `json:"unit"`
	AvailabilityStatus enums.AvailabilityStatus `json:"availability_status"`
	Images             []string                 `json:"images"`
	Tags               []string                 `json:"tags"`
	Featured           bool                     `json:"featured"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
	Supplier           *Supplier                `json:"supplier,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	out := p
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	if p.Supplier != nil {
		s := *p.Supplier
		out.Supplier = &s
	}
	return out
}

func (p Product) supplierRating() float64 {
	if p.Supplier == nil {
		return 0
	}
	return p.Supplier.Rating
}
