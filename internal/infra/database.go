package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the embedded SQLite file (creating the data directory on
// first run), runs AutoMigrate for all tables, then applies the idempotent
// DDL patches GORM cannot express.
func NewDatabase(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer at a time; the single connection keeps gorm
	// from hitting SQLITE_BUSY under concurrent handlers.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations applies AutoMigrate plus schema patches. Exposed separately
// for the seed command.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Employee{},
		&model.TimeRecord{},
		&model.InventoryItem{},
		&model.StockMovement{},
		&model.Product{},
		&model.ProductionOrder{},
		&model.Boleto{},
		&model.Customer{},
		&model.Sale{},
		&model.SaleItem{},
		&model.CashRegisterSession{},
		&model.Member{},
		&model.CatalogOrder{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs DDL that AutoMigrate cannot express. Every
// statement is IF NOT EXISTS so re-running on an existing file is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// At most one open cash session. The partial index turns a race
		// between two concurrent opens into a constraint violation instead
		// of two open drawers.
		{"single open session index",
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_single_open
			     ON cash_register_sessions (status)
			     WHERE status = 'open'`},
		// Backstop for catalog order numbering: racing submissions that
		// computed the same suffix fail here and roll back.
		{"unique catalog order number",
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_catalog_orders_number
			     ON catalog_orders (order_number)`},
		{"movements by item and date",
			`CREATE INDEX IF NOT EXISTS idx_stock_movements_item_created
			     ON stock_movements (item_id, created_at)`},
		{"sales by date",
			`CREATE INDEX IF NOT EXISTS idx_sales_created_at
			     ON sales (created_at)`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
