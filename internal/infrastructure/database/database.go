package database

import (
	"context"
	"fmt"
	"time"

	"recipe-pantry/internal/core/model"
	"recipe-pantry/internal/infrastructure/config"
	"recipe-pantry/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const pingTimeout = 5 * time.Second

// New 建立資料庫連線並執行遷移
func New(cfg *config.Config) (*gorm.DB, error) {
	gormLevel := logger.Silent
	if cfg.App.Debug {
		gormLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLevel),
		TranslateError: true, // 唯一鍵衝突轉為 gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.Database.PoolSize > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.PoolSize)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Ping(context.Background(), db); err != nil {
		return nil, err
	}

	// 依外鍵順序遷移
	if err := db.AutoMigrate(
		&model.User{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	common.LogInfo("資料庫連線成功",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Name),
		zap.Int("pool_size", cfg.Database.PoolSize),
	)

	return db, nil
}

// Ping 檢查資料庫連線（供就緒檢查使用）
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
