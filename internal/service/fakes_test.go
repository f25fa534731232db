package service_test

import (
	"context"
	"time"

	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository fakes. DB() returns nil so services run their
// transactional closures directly, without a real connection.

// ── SaleRepository ───────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	sales []model.Sale
	folio int64
}

func (r *fakeSaleRepo) DB() *gorm.DB { return nil }

func (r *fakeSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	r.sales = append(r.sales, *s)
	return nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for i := range r.sales {
		if r.sales[i].ID == id {
			return &r.sales[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSaleRepo) UpdateStatusTx(_ context.Context, _ *gorm.DB, id uuid.UUID, status, reason string) error {
	for i := range r.sales {
		if r.sales[i].ID == id {
			now := time.Now()
			r.sales[i].Status = status
			r.sales[i].CancelReason = &reason
			r.sales[i].CancelledAt = &now
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeSaleRepo) NextFolio(_ context.Context, _ *gorm.DB) (int64, error) {
	r.folio++
	return r.folio, nil
}

func (r *fakeSaleRepo) ListRange(_ context.Context, from, to time.Time) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.CreatedAt.After(from) && !s.CreatedAt.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListRangeTx(ctx context.Context, _ *gorm.DB, from, to time.Time) ([]model.Sale, error) {
	return r.ListRange(ctx, from, to)
}

func (r *fakeSaleRepo) List(_ context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if filter.Status != "" && filter.Status != "all" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

// ── CashCutRepository ────────────────────────────────────────────────────────

type fakeCutRepo struct {
	cuts  []model.CashCut
	folio int64
}

func (r *fakeCutRepo) DB() *gorm.DB { return nil }

func (r *fakeCutRepo) AcquireCreateLock(_ context.Context, _ *gorm.DB) error { return nil }

func (r *fakeCutRepo) Create(_ context.Context, _ *gorm.DB, c *model.CashCut) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.cuts = append(r.cuts, *c)
	return nil
}

func (r *fakeCutRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashCut, error) {
	for i := range r.cuts {
		if r.cuts[i].ID == id {
			return &r.cuts[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCutRepo) FindLast(_ context.Context) (*model.CashCut, error) {
	var last *model.CashCut
	for i := range r.cuts {
		if last == nil || r.cuts[i].RangeEnd.After(last.RangeEnd) {
			last = &r.cuts[i]
		}
	}
	return last, nil
}

func (r *fakeCutRepo) FindLastTx(ctx context.Context, _ *gorm.DB) (*model.CashCut, error) {
	return r.FindLast(ctx)
}

func (r *fakeCutRepo) NextFolio(_ context.Context, _ *gorm.DB) (int64, error) {
	r.folio++
	return r.folio, nil
}

func (r *fakeCutRepo) List(_ context.Context, _, _ *time.Time, page, limit int) ([]model.CashCut, int64, error) {
	return r.cuts, int64(len(r.cuts)), nil
}

var _ repository.CashCutRepository = (*fakeCutRepo)(nil)

// ── CashMovementRepository ───────────────────────────────────────────────────

type fakeMovementRepo struct {
	movs []model.CashMovement
}

func (r *fakeMovementRepo) Create(_ context.Context, m *model.CashMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movs = append(r.movs, *m)
	return nil
}

func (r *fakeMovementRepo) CreateTx(ctx context.Context, _ *gorm.DB, m *model.CashMovement) error {
	return r.Create(ctx, m)
}

func (r *fakeMovementRepo) ListRange(_ context.Context, from, to time.Time) ([]model.CashMovement, error) {
	var out []model.CashMovement
	for _, m := range r.movs {
		if m.CreatedAt.After(from) && !m.CreatedAt.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListRangeTx(ctx context.Context, _ *gorm.DB, from, to time.Time) ([]model.CashMovement, error) {
	return r.ListRange(ctx, from, to)
}

func (r *fakeMovementRepo) List(_ context.Context, filter dto.MovementFilter, since time.Time) ([]model.CashMovement, int64, error) {
	var out []model.CashMovement
	for _, m := range r.movs {
		if filter.Type != "" && string(m.Type) != filter.Type {
			continue
		}
		// Mirrors the SQL: an explicit date filters on that calendar day,
		// otherwise the open window since the last cut applies.
		if filter.Date != "" {
			if m.CreatedAt.Format("2006-01-02") != filter.Date {
				continue
			}
		} else if !m.CreatedAt.After(since) {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.CashMovementRepository = (*fakeMovementRepo)(nil)

// ── ProductRepository ────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode && p.IsActive {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == code || (p.Barcode != nil && *p.Barcode == code) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) AdjustStockTx(_ context.Context, _ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

// ── InventoryMovementRepository ──────────────────────────────────────────────

type fakeInventoryRepo struct {
	movs []model.InventoryMovement
}

func (r *fakeInventoryRepo) DB() *gorm.DB { return nil }

func (r *fakeInventoryRepo) Create(_ context.Context, m *model.InventoryMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movs = append(r.movs, *m)
	return nil
}

func (r *fakeInventoryRepo) CreateTx(ctx context.Context, _ *gorm.DB, m *model.InventoryMovement) error {
	return r.Create(ctx, m)
}

func (r *fakeInventoryRepo) List(_ context.Context, filter repository.InventoryMovementFilter) ([]model.InventoryMovement, int64, error) {
	var out []model.InventoryMovement
	for _, m := range r.movs {
		if filter.ProductID != nil && m.ProductID != *filter.ProductID {
			continue
		}
		if filter.Type != "" && string(m.Type) != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.InventoryMovementRepository = (*fakeInventoryRepo)(nil)

// ── CustomerRepository ───────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
	payments  []model.CustomerPayment
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *fakeCustomerRepo) DB() *gorm.DB { return nil }

func (r *fakeCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) AdjustBalanceTx(_ context.Context, _ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	c, ok := r.customers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.CurrentBalance = c.CurrentBalance.Add(delta)
	if c.CurrentBalance.IsNegative() {
		c.CurrentBalance = decimal.Zero
	}
	return nil
}

func (r *fakeCustomerRepo) CreatePaymentTx(_ context.Context, _ *gorm.DB, p *model.CustomerPayment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.payments = append(r.payments, *p)
	return nil
}

func (r *fakeCustomerRepo) ListPayments(_ context.Context, customerID uuid.UUID) ([]model.CustomerPayment, error) {
	var out []model.CustomerPayment
	for _, p := range r.payments {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ string, _, _ int) ([]model.Customer, int64, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

// ── Actors ───────────────────────────────────────────────────────────────────

func adminActor() model.Actor {
	return model.Actor{
		ID:          uuid.New(),
		Username:    "admin",
		Role:        model.RoleAdmin,
		Permissions: model.DefaultPermissions(model.RoleAdmin),
	}
}

func cashierActor() model.Actor {
	return model.Actor{
		ID:          uuid.New(),
		Username:    "caja1",
		Role:        model.RoleCajero,
		Permissions: model.DefaultPermissions(model.RoleCajero),
	}
}
