package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tahweela/tahweela-backend/internal/orders"
	"github.com/tahweela/tahweela-backend/pkg/enums"
)

// Intent is the gateway's handle for collecting one order's payment.
type Intent struct {
	ID       string              `json:"id"`
	OrderID  string              `json:"order_id"`
	Amount   decimal.Decimal     `json:"amount"`
	Currency enums.Currency      `json:"currency"`
	Status   enums.PaymentStatus `json:"status"`
}

// Outcome summarizes a submission across every order in a checkout.
type Outcome struct {
	Status  enums.PaymentStatus `json:"status"`
	Total   decimal.Decimal     `json:"total"`
	Intents []Intent            `json:"intents"`
}

// Gateway accepts draft orders for payment.
type Gateway interface {
	Submit(ctx context.Context, drafts []orders.DraftOrder) (Outcome, error)
}

// StubGateway opens a pending intent per order and never charges anything.
type StubGateway struct {
	newID func() string
}

func NewStubGateway() *StubGateway {
	return &StubGateway{newID: func() string { return "pi_" + uuid.NewString() }}
}

func (g *StubGateway) Submit(ctx context.Context, drafts []orders.DraftOrder) (Outcome, error) {
	if len(drafts) == 0 {
		return Outcome{}, fmt.Errorf("no orders to pay")
	}
	outcome := Outcome{
		Status:  enums.PaymentStatusPending,
		Total:   decimal.Zero,
		Intents: make([]Intent, 0, len(drafts)),
	}
	for _, d := range drafts {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		outcome.Intents = append(outcome.Intents, Intent{
			ID:       g.newID(),
			OrderID:  d.ID,
			Amount:   d.TotalAmount,
			Currency: d.Currency,
			Status:   enums.PaymentStatusPending,
		})
		outcome.Total = outcome.Total.Add(d.TotalAmount)
	}
	return outcome, nil
}
