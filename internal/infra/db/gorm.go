package db

import (
	"fmt"

	"salesnote/internal/config"
	"salesnote/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{TablePrefix: cfg.TablePrefix},
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(DSN(cfg)), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// DATABASE_URL があれば最優先で使う
func DSN(cfg config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)
}

// 全テーブル
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Product{},
		&model.LineItem{},
		&model.Address{},
		&model.Order{},
		&model.Document{},
	)
}
