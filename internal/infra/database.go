package infra

import (
	"fmt"

	"viotex/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that
// AutoMigrate cannot express (partial indexes, CHECK constraints).
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

// RunMigrations applies AutoMigrate plus the manual schema patches. Separate
// from NewDatabase so integration tests can call it against their own DB.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Cliente{},
		&model.PrecioProducto{},
		&model.Cotizacion{},
		&model.CotizacionLinea{},
		&model.CotizacionAdicion{},
		&model.Pedido{},
		&model.PedidoItem{},
		&model.HistorialEstado{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot fully
// handle on its own. Every statement is guarded so re-running on an already
// patched DB is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// El historial de estados se consulta siempre por item y en orden.
		{"idx historial por item", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_historial_item_created') THEN
    CREATE INDEX idx_historial_item_created
        ON historial_estados (pedido_item_id, created_at);
  END IF;
END $$`},
		// El tablero de produccion filtra items no terminales por estado.
		{"idx parcial items activos", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedido_items_activos') THEN
    CREATE INDEX idx_pedido_items_activos
        ON pedido_items (estado)
        WHERE estado NOT IN ('COMPLETADO', 'CANCELADO');
  END IF;
END $$`},
		// Una sola configuracion de precio activa por referencia.
		{"idx parcial precio activo unico", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_precio_referencia_activo') THEN
    CREATE UNIQUE INDEX uni_precio_referencia_activo
        ON precios_productos (referencia)
        WHERE activo;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
