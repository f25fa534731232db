package repository

import (
	"context"

	"tenaypos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryMovementFilter narrows a kardex listing.
type InventoryMovementFilter struct {
	ProductID *uuid.UUID
	Type      string
	Page      int
	Limit     int
}

type InventoryMovementRepository interface {
	DB() *gorm.DB
	Create(ctx context.Context, m *model.InventoryMovement) error
	// CreateTx records a movement inside the caller's transaction, so sale
	// kardex entries commit or roll back with the sale.
	CreateTx(ctx context.Context, tx *gorm.DB, m *model.InventoryMovement) error
	List(ctx context.Context, filter InventoryMovementFilter) ([]model.InventoryMovement, int64, error)
}

type inventoryMovementRepo struct{ db *gorm.DB }

func NewInventoryMovementRepository(db *gorm.DB) InventoryMovementRepository {
	return &inventoryMovementRepo{db: db}
}

func (r *inventoryMovementRepo) DB() *gorm.DB { return r.db }

func (r *inventoryMovementRepo) Create(ctx context.Context, m *model.InventoryMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *inventoryMovementRepo) CreateTx(ctx context.Context, tx *gorm.DB, m *model.InventoryMovement) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *inventoryMovementRepo) List(ctx context.Context, filter InventoryMovementFilter) ([]model.InventoryMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.InventoryMovement{})
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movs []model.InventoryMovement
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&movs).Error
	return movs, total, err
}
