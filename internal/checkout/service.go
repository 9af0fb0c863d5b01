package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tahweela/tahweela-backend/internal/cart"
	"github.com/tahweela/tahweela-backend/internal/orders"
	"github.com/tahweela/tahweela-backend/internal/payments"
	"github.com/tahweela/tahweela-backend/pkg/enums"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
	"github.com/tahweela/tahweela-backend/pkg/logger"
	"github.com/tahweela/tahweela-backend/pkg/metrics"
)

const (
	outcomeSuccess       = "success"
	outcomeEmptyCart     = "empty_cart"
	outcomeInvalid       = "invalid"
	outcomePlaceFailed   = "place_failed"
	outcomePaymentFailed = "payment_failed"
)

type cartSource interface {
	ForOwner(ctx context.Context, owner string) (*cart.Controller, error)
}

type orderPlacer interface {
	Place(ctx context.Context, drafts []orders.DraftOrder) error
	RecordPayment(ctx context.Context, orderID, intentID string, status enums.PaymentStatus) error
}

// Service turns a user's cart into placed draft orders.
type Service interface {
	Execute(ctx context.Context, in Input) (*Result, error)
}

// Input carries the authenticated user and the checkout form.
type Input struct {
	UserID          string
	ShippingAddress string
	BillingAddress  string
	Notes           string
}

// Result reports a checkout. On failure Success is false and Error holds the
// message; Execute also returns the typed error.
type Result struct {
	Success bool                `json:"success"`
	Orders  []orders.DraftOrder `json:"orders,omitempty"`
	Payment *payments.Outcome   `json:"payment,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	Carts    cartSource
	Builder  *orders.Builder
	Orders   orderPlacer
	Payments payments.Gateway
	Currency enums.Currency
	Logger   *logger.Logger
	Metrics  *metrics.CartMetrics
}

type service struct {
	carts    cartSource
	builder  *orders.Builder
	orders   orderPlacer
	payments payments.Gateway
	currency enums.Currency
	logg     *logger.Logger
	metrics  *metrics.CartMetrics
}

func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, fmt.Errorf("cart source required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order service required")
	}
	if params.Payments == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	builder := params.Builder
	if builder == nil {
		builder = orders.NewBuilder()
	}
	currency := params.Currency
	if currency == "" {
		currency = enums.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("unsupported checkout currency %q", currency)
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		carts:    params.Carts,
		builder:  builder,
		orders:   params.Orders,
		payments: params.Payments,
		currency: currency,
		logg:     logg,
		metrics:  params.Metrics,
	}, nil
}

// Execute snapshots the cart, builds one order per supplier, places them,
// opens payment and finally clears the cart. The cart is left untouched when
// placement fails.
func (s *service) Execute(ctx context.Context, in Input) (*Result, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return s.fail(ctx, outcomeInvalid, pkgerrors.New(pkgerrors.CodeUnauthorized, "authenticated user required"))
	}
	ctx = s.logg.WithUserID(ctx, userID)

	ctrl, err := s.carts.ForOwner(ctx, userID)
	if err != nil {
		return s.fail(ctx, outcomeInvalid, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart"))
	}

	drafts, err := s.builder.BuildDraftOrders(ctrl.Snapshot(), orders.BuildInput{
		UserID:          userID,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		Notes:           in.Notes,
		Currency:        s.currency,
	})
	if err != nil {
		outcome := outcomeInvalid
		if errors.Is(err, orders.ErrEmptyCart) {
			outcome = outcomeEmptyCart
		}
		return s.fail(ctx, outcome, err)
	}

	if err := s.orders.Place(ctx, drafts); err != nil {
		return s.fail(ctx, outcomePlaceFailed, err)
	}

	result := &Result{Success: true, Orders: drafts}
	if payment, err := s.payments.Submit(ctx, drafts); err != nil {
		s.metrics.IncCheckout(outcomePaymentFailed)
		s.logg.Error(ctx, "payment submission failed; orders stay pending", err)
	} else {
		s.attachPayment(ctx, result, payment)
	}

	ctrl.Clear(ctx)

	s.metrics.IncCheckout(outcomeSuccess)
	s.metrics.ObserveDraftOrders(len(drafts))
	s.logg.Info(s.logg.WithField(ctx, "order_count", len(drafts)), "checkout completed")
	return result, nil
}

func (s *service) attachPayment(ctx context.Context, result *Result, payment payments.Outcome) {
	result.Payment = &payment
	byOrder := make(map[string]payments.Intent, len(payment.Intents))
	for _, intent := range payment.Intents {
		byOrder[intent.OrderID] = intent
	}
	for i := range result.Orders {
		intent, ok := byOrder[result.Orders[i].ID]
		if !ok {
			continue
		}
		result.Orders[i].PaymentIntentID = intent.ID
		result.Orders[i].PaymentStatus = intent.Status
		if err := s.orders.RecordPayment(ctx, intent.OrderID, intent.ID, intent.Status); err != nil {
			s.logg.Error(s.logg.WithField(ctx, "order_id", intent.OrderID), "failed to record payment intent", err)
		}
	}
}

func (s *service) fail(ctx context.Context, outcome string, err error) (*Result, error) {
	s.metrics.IncCheckout(outcome)
	s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"outcome": outcome, "error": err.Error()}), "checkout rejected")
	return &Result{Success: false, Error: publicMessage(err)}, err
}

func publicMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}
