package repository

import (
	"context"
	"time"

	"tenaypos/internal/dto"
	"tenaypos/internal/model"

	"gorm.io/gorm"
)

type CashMovementRepository interface {
	Create(ctx context.Context, m *model.CashMovement) error
	CreateTx(ctx context.Context, tx *gorm.DB, m *model.CashMovement) error
	// ListRange returns movements with created_at in (from, to], oldest first.
	ListRange(ctx context.Context, from, to time.Time) ([]model.CashMovement, error)
	// ListRangeTx is ListRange bound to a running transaction.
	ListRangeTx(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]model.CashMovement, error)
	List(ctx context.Context, filter dto.MovementFilter, since time.Time) ([]model.CashMovement, int64, error)
}

type cashMovementRepo struct{ db *gorm.DB }

func NewCashMovementRepository(db *gorm.DB) CashMovementRepository {
	return &cashMovementRepo{db: db}
}

func (r *cashMovementRepo) Create(ctx context.Context, m *model.CashMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cashMovementRepo) CreateTx(ctx context.Context, tx *gorm.DB, m *model.CashMovement) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *cashMovementRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.CashMovement, error) {
	return listMovementRange(ctx, r.db, from, to)
}

func (r *cashMovementRepo) ListRangeTx(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]model.CashMovement, error) {
	return listMovementRange(ctx, tx, from, to)
}

func listMovementRange(ctx context.Context, db *gorm.DB, from, to time.Time) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := db.WithContext(ctx).
		Where("created_at > ? AND created_at <= ?", from, to).
		Order("created_at ASC").
		Find(&movs).Error
	return movs, err
}

func (r *cashMovementRepo) List(ctx context.Context, filter dto.MovementFilter, since time.Time) ([]model.CashMovement, int64, error) {
	var movs []model.CashMovement
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.CashMovement{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: the open window since the last cut
		q = q.Where("created_at > ?", since)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&movs).Error

	return movs, total, err
}
