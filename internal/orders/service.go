package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tahweela/tahweela-backend/pkg/db"
	"github.com/tahweela/tahweela-backend/pkg/enums"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
	"github.com/tahweela/tahweela-backend/pkg/logger"
)

// Service owns draft orders once checkout hands them over.
type Service interface {
	Place(ctx context.Context, orders []DraftOrder) error
	ListForUser(ctx context.Context, userID string) ([]DraftOrder, error)
	Get(ctx context.Context, userID, orderID string) (*DraftOrder, error)
	UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) (*DraftOrder, error)
	Cancel(ctx context.Context, userID, orderID string) (*DraftOrder, error)
	RecordPayment(ctx context.Context, orderID, intentID string, status enums.PaymentStatus) error
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
	Clock  func() time.Time
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Clock
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, logg: logg, now: now}, nil
}

func (s *service) Place(ctx context.Context, orders []DraftOrder) error {
	if len(orders) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no orders to place")
	}
	for _, o := range orders {
		if o.UserID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "order missing user id")
		}
		if o.Status != enums.OrderStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order %s is not pending", o.ID))
		}
	}
	if err := s.repo.Create(ctx, orders); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "order already placed")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist draft orders")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"user_id":     orders[0].UserID,
		"order_count": len(orders),
	}), "draft orders placed")
	return nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]DraftOrder, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

// Get returns the order only when it belongs to userID.
func (s *service) Get(ctx context.Context, userID, orderID string) (*DraftOrder, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, status enums.OrderStatus) (*DraftOrder, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, status)
}

// Cancel is the buyer-side transition to cancelled.
func (s *service) Cancel(ctx context.Context, userID, orderID string) (*DraftOrder, error) {
	order, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, enums.OrderStatusCancelled)
}

func (s *service) RecordPayment(ctx context.Context, orderID, intentID string, status enums.PaymentStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment status %q", status))
	}
	if err := s.repo.UpdatePayment(ctx, orderID, intentID, status, s.now().UTC()); err != nil {
		return mapRepoError(err, "record payment")
	}
	return nil
}

func (s *service) transition(ctx context.Context, order *DraftOrder, next enums.OrderStatus) (*DraftOrder, error) {
	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot move order from %s to %s", order.Status, next)).
			WithDetails(map[string]any{"order_id": order.ID, "from": order.Status, "to": next})
	}
	at := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, order.ID, next, at); err != nil {
		return nil, mapRepoError(err, "update order status")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID,
		"from":     order.Status,
		"to":       next,
	}), "order status changed")

	order.Status = next
	order.UpdatedAt = at
	return order, nil
}

func (s *service) load(ctx context.Context, orderID string) (*DraftOrder, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, mapRepoError(err, "load order")
	}
	return order, nil
}

func mapRepoError(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
