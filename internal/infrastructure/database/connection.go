package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrescamacho/homestead-go/internal/adapters/persistence"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
)

const memoryPath = ":memory:"

var dialectors = map[string]func(cfg config.DatabaseConfig) gorm.Dialector{
	"postgres": func(cfg config.DatabaseConfig) gorm.Dialector {
		return postgres.Open(cfg.DSN())
	},
	"sqlite": func(cfg config.DatabaseConfig) gorm.Dialector {
		if cfg.Path == "" {
			return sqlite.Open(memoryPath)
		}
		return sqlite.Open(cfg.Path)
	},
}

// Open connects to the configured database and brings the game tables up to date
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, ok := dialectors[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
	db, err := gorm.Open(dialector(cfg), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying db: %w", err)
	}
	if cfg.Type == "sqlite" {
		// one writer, and each :memory: connection would be a separate database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpen)
		sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdle)
		sqlDB.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	}

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// OpenMemory opens a migrated, private in-memory sqlite database
func OpenMemory() (*gorm.DB, error) {
	return Open(config.DatabaseConfig{Type: "sqlite", Path: memoryPath})
}

// Migrate creates or updates every game table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(persistence.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Truncate deletes every row of every game table, keeping the schema
func Truncate(db *gorm.DB) error {
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Transaction(func(tx *gorm.DB) error {
		for _, model := range persistence.AllModels() {
			if err := tx.Delete(model).Error; err != nil {
				return fmt.Errorf("failed to truncate %T: %w", model, err)
			}
		}
		return nil
	})
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
