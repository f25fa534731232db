package repository

import (
	"context"
	"time"

	"tenaypos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.OnlineOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OnlineOrder, error)
	Update(ctx context.Context, o *model.OnlineOrder) error
	List(ctx context.Context, status string, page, limit int) ([]model.OnlineOrder, int64, error)
	// ListNotifyRetries returns orders whose notification failed and whose
	// backoff deadline has passed.
	ListNotifyRetries(ctx context.Context, now time.Time, limit int) ([]model.OnlineOrder, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.OnlineOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OnlineOrder, error) {
	var o model.OnlineOrder
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) Update(ctx context.Context, o *model.OnlineOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) List(ctx context.Context, status string, page, limit int) ([]model.OnlineOrder, int64, error) {
	var orders []model.OnlineOrder
	var total int64
	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Model(&model.OnlineOrder{})
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepo) ListNotifyRetries(ctx context.Context, now time.Time, limit int) ([]model.OnlineOrder, error) {
	var orders []model.OnlineOrder
	err := r.db.WithContext(ctx).
		Where("notify_status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.NotifyError, now).
		Order("next_retry_at ASC").
		Limit(limit).
		Preload("Items").
		Find(&orders).Error
	return orders, err
}
