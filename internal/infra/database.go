package infra

import (
	"fmt"

	"tenaypos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (sequences, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Exposed separately so
// integration tests can migrate a fresh container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.ProductVariant{},
		&model.Customer{},
		&model.CustomerPayment{},
		&model.Sale{},
		&model.SaleItem{},
		&model.SalePayment{},
		&model.CashMovement{},
		&model.CashCut{},
		&model.InventoryMovement{},
		&model.OnlineOrder{},
		&model.OnlineOrderItem{},
		&model.StoreConfig{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement is safe to re-run on an already-patched database.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Folio counters: sequences survive rollbacks, so folios are
		// monotonic and unique even when a sale transaction aborts.
		{"create sales folio sequence",
			`CREATE SEQUENCE IF NOT EXISTS sales_folio_seq START 1`},
		{"create cash cuts folio sequence",
			`CREATE SEQUENCE IF NOT EXISTS cash_cuts_folio_seq START 1`},
		// Partial index serving the notify retry cron query
		{"create notify retry partial index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_online_orders_notify_retry') THEN
    CREATE INDEX idx_online_orders_notify_retry
        ON online_orders (next_retry_at)
        WHERE notify_status = 'error' AND next_retry_at IS NOT NULL;
  END IF;
END $$`},
		// gen_random_uuid() needs pgcrypto on Postgres < 13
		{"enable pgcrypto",
			`CREATE EXTENSION IF NOT EXISTS pgcrypto`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
