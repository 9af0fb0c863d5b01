package orders

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tahweela/tahweela-backend/internal/repo"
	"github.com/tahweela/tahweela-backend/pkg/enums"
)

// Repository persists draft orders and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, orders []DraftOrder) error
	FindByID(ctx context.Context, id string) (*DraftOrder, error)
	ListByUser(ctx context.Context, userID string) ([]DraftOrder, error)
	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus, at time.Time) error
	UpdatePayment(ctx context.Context, id, intentID string, status enums.PaymentStatus, at time.Time) error
}

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) Create(ctx context.Context, orders []DraftOrder) error {
	if len(orders) == 0 {
		return nil
	}
	records := make([]orderRecord, len(orders))
	for i, o := range orders {
		records[i] = toRecord(o)
	}
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

func (r *repository) FindByID(ctx context.Context, id string) (*DraftOrder, error) {
	var rec orderRecord
	if err := r.withItems(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	order := fromRecord(rec)
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]DraftOrder, error) {
	var recs []orderRecord
	if err := r.withItems(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id ASC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]DraftOrder, len(recs))
	for i, rec := range recs {
		out[i] = fromRecord(rec)
	}
	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"status":     status,
		"updated_at": at,
	})
}

func (r *repository) UpdatePayment(ctx context.Context, id, intentID string, status enums.PaymentStatus, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"payment_intent_id": optional(intentID),
		"payment_status":    status,
		"updated_at":        at,
	})
}

func (r *repository) update(ctx context.Context, id string, fields map[string]any) error {
	res := r.DB(ctx).Model(&orderRecord{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) withItems(ctx context.Context) *gorm.DB {
	return r.DB(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}
