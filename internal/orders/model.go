package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tahweela/tahweela-backend/internal/catalog"
	"github.com/tahweela/tahweela-backend/pkg/enums"
	"github.com/tahweela/tahweela-backend/pkg/types"
)

// DraftOrder is the per-supplier order produced at checkout.
type DraftOrder struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	SupplierID      string              `json:"supplier_id"`
	Items           []OrderLineItem     `json:"items"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Currency        enums.Currency      `json:"currency"`
	Status          enums.OrderStatus   `json:"status"`
	PaymentStatus   enums.PaymentStatus `json:"payment_status"`
	PaymentIntentID string              `json:"payment_intent_id,omitempty"`
	ShippingAddress string              `json:"shipping_address"`
	BillingAddress  string              `json:"billing_address,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderLineItem is one cart line frozen into an order.
type OrderLineItem struct {
	ID             string               `json:"id"`
	OrderID        string               `json:"order_id"`
	ProductID      string               `json:"product_id"`
	ProductName    string               `json:"product_name,omitempty"`
	Quantity       int                  `json:"quantity"`
	UnitPrice      decimal.Decimal      `json:"unit_price"`
	TotalPrice     decimal.Decimal      `json:"total_price"`
	Specifications types.Specifications `json:"specifications,omitempty"`
	Product        *catalog.Product     `json:"product,omitempty"`
}

type orderRecord struct {
	ID              string              `gorm:"column:id;primaryKey"`
	UserID          string              `gorm:"column:user_id;not null"`
	SupplierID      string              `gorm:"column:supplier_id;not null"`
	Status          enums.OrderStatus   `gorm:"column:status;type:text;not null"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:text;not null"`
	PaymentIntentID *string             `gorm:"column:payment_intent_id"`
	TotalAmount     decimal.Decimal     `gorm:"column:total_amount;type:numeric(14,2);not null"`
	Currency        enums.Currency      `gorm:"column:currency;type:text;not null"`
	ShippingAddress string              `gorm:"column:shipping_address;not null"`
	BillingAddress  *string             `gorm:"column:billing_address"`
	Notes           *string             `gorm:"column:notes"`
	Items           []orderItemRecord   `gorm:"foreignKey:OrderID;references:ID"`
	CreatedAt       time.Time           `gorm:"column:created_at"`
	UpdatedAt       time.Time           `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "draft_orders" }

type orderItemRecord struct {
	ID             string               `gorm:"column:id;primaryKey"`
	OrderID        string               `gorm:"column:order_id;not null"`
	Position       int                  `gorm:"column:position;not null"`
	ProductID      string               `gorm:"column:product_id;not null"`
	ProductName    *string              `gorm:"column:product_name"`
	Quantity       int                  `gorm:"column:quantity;not null"`
	UnitPrice      decimal.Decimal      `gorm:"column:unit_price;type:numeric(14,2);not null"`
	TotalPrice     decimal.Decimal      `gorm:"column:total_price;type:numeric(14,2);not null"`
	Specifications types.Specifications `gorm:"column:specifications;serializer:json"`
	CreatedAt      time.Time            `gorm:"column:created_at"`
}

func (orderItemRecord) TableName() string { return "order_line_items" }

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func toRecord(o DraftOrder) orderRecord {
	rec := orderRecord{
		ID:              o.ID,
		UserID:          o.UserID,
		SupplierID:      o.SupplierID,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		PaymentIntentID: optional(o.PaymentIntentID),
		TotalAmount:     o.TotalAmount,
		Currency:        o.Currency,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  optional(o.BillingAddress),
		Notes:           optional(o.Notes),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           make([]orderItemRecord, len(o.Items)),
	}
	for i, item := range o.Items {
		rec.Items[i] = orderItemRecord{
			ID:             item.ID,
			OrderID:        o.ID,
			Position:       i,
			ProductID:      item.ProductID,
			ProductName:    optional(item.ProductName),
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			TotalPrice:     item.TotalPrice,
			Specifications: item.Specifications,
			CreatedAt:      o.CreatedAt,
		}
	}
	return rec
}

func fromRecord(rec orderRecord) DraftOrder {
	order := DraftOrder{
		ID:              rec.ID,
		UserID:          rec.UserID,
		SupplierID:      rec.SupplierID,
		Status:          rec.Status,
		PaymentStatus:   rec.PaymentStatus,
		PaymentIntentID: deref(rec.PaymentIntentID),
		TotalAmount:     rec.TotalAmount,
		Currency:        rec.Currency,
		ShippingAddress: rec.ShippingAddress,
		BillingAddress:  deref(rec.BillingAddress),
		Notes:           deref(rec.Notes),
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
		Items:           make([]OrderLineItem, len(rec.Items)),
	}
	for i, item := range rec.Items {
		order.Items[i] = OrderLineItem{
			ID:             item.ID,
			OrderID:        item.OrderID,
			ProductID:      item.ProductID,
			ProductName:    deref(item.ProductName),
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			TotalPrice:     item.TotalPrice,
			Specifications: item.Specifications,
		}
	}
	return order
}
