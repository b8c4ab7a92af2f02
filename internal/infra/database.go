package infra

import (
	"fmt"

	"github.com/wipxap/TITANIUM-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the SQL patches that GORM cannot
// express (partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Unique violations surface as gorm.ErrDuplicatedKey — the receipt
		// retry loop and the register-open race depend on this.
		TranslateError: true,
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

// RunMigrations creates/updates the schema. Also used by integration tests.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Perfil{},
		&model.Plan{},
		&model.Producto{},
		&model.Maquina{},
		&model.Caja{},
		&model.Venta{},
		&model.VentaItem{},
		&model.SolicitudAnulacion{},
		&model.Suscripcion{},
		&model.DescuentoRenovacion{},
		&model.Asistencia{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot produce.
//
// The "at most one open register" invariant is enforced here at the database
// level: a partial unique index over a constant expression admits at most one
// row with closed_at IS NULL, so two concurrent open attempts cannot both
// commit regardless of what the application-level pre-check saw.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uno_caja_abierta') THEN
		    CREATE UNIQUE INDEX uno_caja_abierta ON cajas ((true)) WHERE closed_at IS NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
