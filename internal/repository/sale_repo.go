package repository

import (
	"context"
	"time"

	"tenaypos/internal/dto"
	"tenaypos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	UpdateStatusTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, status, reason string) error
	NextFolio(ctx context.Context, tx *gorm.DB) (int64, error)
	// ListRange returns every sale, any status, with created_at in (from, to].
	ListRange(ctx context.Context, from, to time.Time) ([]model.Sale, error)
	// ListRangeTx is ListRange bound to a running transaction, for reads that
	// must share a snapshot with a subsequent write.
	ListRangeTx(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").Preload("Payments").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) UpdateStatusTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, status, reason string) error {
	now := time.Now()
	return tx.WithContext(ctx).Model(&model.Sale{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        status,
		"cancel_reason": reason,
		"cancelled_at":  &now,
	}).Error
}

func (r *saleRepo) NextFolio(ctx context.Context, tx *gorm.DB) (int64, error) {
	// Uses a PostgreSQL sequence for atomic folio generation
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('sales_folio_seq')").Scan(&num).Error
	return num, err
}

func (r *saleRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	return listSaleRange(ctx, r.db, from, to)
}

func (r *saleRepo) ListRangeTx(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]model.Sale, error) {
	return listSaleRange(ctx, tx, from, to)
}

func listSaleRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := db.WithContext(ctx).
		Where("created_at > ? AND created_at <= ?", from, to).
		Preload("Items").Preload("Payments").
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").Preload("Payments").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}
