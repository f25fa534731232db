package repository

import (
	"context"

	"tenaypos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	// AdjustBalanceTx adds delta to the running balance inside the caller's
	// transaction. Negative deltas clamp at zero.
	AdjustBalanceTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	CreatePaymentTx(ctx context.Context, tx *gorm.DB, p *model.CustomerPayment) error
	ListPayments(ctx context.Context, customerID uuid.UUID) ([]model.CustomerPayment, error)
	List(ctx context.Context, query string, page, limit int) ([]model.Customer, int64, error)
	DB() *gorm.DB
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) DB() *gorm.DB { return r.db }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) AdjustBalanceTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.WithContext(ctx).Model(&model.Customer{}).
		Where("id = ?", id).
		Update("current_balance", gorm.Expr("GREATEST(current_balance + ?, 0)", delta)).Error
}

func (r *customerRepo) CreatePaymentTx(ctx context.Context, tx *gorm.DB, p *model.CustomerPayment) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *customerRepo) ListPayments(ctx context.Context, customerID uuid.UUID) ([]model.CustomerPayment, error) {
	var payments []model.CustomerPayment
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *customerRepo) List(ctx context.Context, query string, page, limit int) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64
	offset := (page - 1) * limit

	q := r.db.WithContext(ctx).Model(&model.Customer{}).Where("is_active")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ?", like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&customers).Error

	return customers, total, err
}
