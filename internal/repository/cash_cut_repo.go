package repository

import (
	"context"
	"errors"
	"time"

	"tenaypos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CashCutRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.CashCut) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashCut, error)
	// FindLast returns the most recent cut by range end, or nil when no cut
	// exists yet.
	FindLast(ctx context.Context) (*model.CashCut, error)
	FindLastTx(ctx context.Context, tx *gorm.DB) (*model.CashCut, error)
	NextFolio(ctx context.Context, tx *gorm.DB) (int64, error)
	// AcquireCreateLock serializes concurrent cut creation for the lifetime
	// of the surrounding transaction.
	AcquireCreateLock(ctx context.Context, tx *gorm.DB) error
	List(ctx context.Context, from, to *time.Time, page, limit int) ([]model.CashCut, int64, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type cashCutRepo struct{ db *gorm.DB }

func NewCashCutRepository(db *gorm.DB) CashCutRepository { return &cashCutRepo{db: db} }

func (r *cashCutRepo) DB() *gorm.DB { return r.db }

func (r *cashCutRepo) Create(ctx context.Context, tx *gorm.DB, c *model.CashCut) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *cashCutRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashCut, error) {
	var c model.CashCut
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cashCutRepo) FindLast(ctx context.Context) (*model.CashCut, error) {
	return findLastCut(ctx, r.db)
}

func (r *cashCutRepo) FindLastTx(ctx context.Context, tx *gorm.DB) (*model.CashCut, error) {
	return findLastCut(ctx, tx)
}

func findLastCut(ctx context.Context, db *gorm.DB) (*model.CashCut, error) {
	var c model.CashCut
	err := db.WithContext(ctx).Order("range_end DESC").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cashCutRepo) NextFolio(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('cash_cuts_folio_seq')").Scan(&num).Error
	return num, err
}

func (r *cashCutRepo) AcquireCreateLock(ctx context.Context, tx *gorm.DB) error {
	// Transaction-scoped advisory lock; released automatically on commit or
	// rollback.
	return tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext('cash_cut_create'))").Error
}

func (r *cashCutRepo) List(ctx context.Context, from, to *time.Time, page, limit int) ([]model.CashCut, int64, error) {
	var cuts []model.CashCut
	var total int64
	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Model(&model.CashCut{})
	if from != nil {
		q = q.Where("range_end >= ?", *from)
	}
	if to != nil {
		q = q.Where("range_end <= ?", *to)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("range_end DESC").
		Offset(offset).Limit(limit).
		Find(&cuts).Error

	return cuts, total, err
}
