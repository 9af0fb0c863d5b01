package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tahweela/tahweela-backend/internal/cart"
	"github.com/tahweela/tahweela-backend/pkg/enums"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
)

// ErrEmptyCart is returned when checkout is attempted with no lines.
var ErrEmptyCart = pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")

// IDGenerator returns a fresh order identifier.
type IDGenerator func() string

// BuildInput carries the buyer-supplied checkout fields.
type BuildInput struct {
	UserID          string
	ShippingAddress string
	BillingAddress  string
	Notes           string
	Currency        enums.Currency
}

// Builder turns a cart snapshot into one draft order per supplier.
type Builder struct {
	newID IDGenerator
	now   func() time.Time
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

func WithIDGenerator(gen IDGenerator) BuilderOption {
	return func(b *Builder) {
		if gen != nil {
			b.newID = gen
		}
	}
}

func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildDraftOrders groups lines with cart.SupplierGroups, so orders come out in
// the same supplier order the cart displays. The input is only read.
func (b *Builder) BuildDraftOrders(lines []cart.Line, in BuildInput) ([]DraftOrder, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	shipping := strings.TrimSpace(in.ShippingAddress)
	if shipping == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}
	currency := in.Currency
	if currency == "" {
		currency = enums.CurrencySAR
	}
	if !currency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported currency %q", currency))
	}

	now := b.now().UTC()
	groups := cart.SupplierGroups(lines)
	orders := make([]DraftOrder, 0, len(groups))
	seen := make(map[string]struct{}, len(groups))

	for _, group := range groups {
		orderID := b.newID()
		if orderID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "order id generator returned an empty id")
		}
		if _, dup := seen[orderID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("duplicate order id %q in batch", orderID))
		}
		seen[orderID] = struct{}{}

		items := make([]OrderLineItem, len(group.Lines))
		total := decimal.Zero
		for i, line := range group.Lines {
			item := newLineItem(orderID, i, line.Clone())
			total = total.Add(item.TotalPrice)
			items[i] = item
		}

		orders = append(orders, DraftOrder{
			ID:              orderID,
			UserID:          userID,
			SupplierID:      group.SupplierID,
			Items:           items,
			TotalAmount:     total,
			Currency:        currency,
			Status:          enums.OrderStatusPending,
			PaymentStatus:   enums.PaymentStatusPending,
			ShippingAddress: shipping,
			BillingAddress:  strings.TrimSpace(in.BillingAddress),
			Notes:           strings.TrimSpace(in.Notes),
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return orders, nil
}

func newLineItem(orderID string, idx int, line cart.Line) OrderLineItem {
	unit := line.UnitPrice()
	item := OrderLineItem{
		ID:             fmt.Sprintf("%s-%d", orderID, idx+1),
		OrderID:        orderID,
		ProductID:      line.ProductID,
		Quantity:       line.Quantity,
		UnitPrice:      unit,
		TotalPrice:     unit.Mul(decimal.NewFromInt(int64(line.Quantity))),
		Specifications: line.Specifications,
		Product:        line.Product,
	}
	if line.Product != nil {
		item.ProductName = line.Product.Name
	}
	return item
}
