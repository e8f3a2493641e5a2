package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ArtLegends/medtravel-main-sub002/internal/config"
	"github.com/ArtLegends/medtravel-main-sub002/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const connectPingTimeout = 5 * time.Second

// NewConnection opens the attribution store. Redirect clicks, signup binds and
// report queries share one pool, sized from cfg.
func NewConnection(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                                   logger.NewGormLogger(log, gormlogger.Warn, cfg.SlowThreshold, true),
		DisableForeignKeyConstraintWhenMigrating: true,
		PrepareStmt:                              true,
	})
	if err != nil {
		return nil, fmt.Errorf("open attribution store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("attribution store handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), connectPingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping attribution store at %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	log.Info("Attribution store connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)
	return db, nil
}

// Close releases the pool after the servers have drained
func Close(db *gorm.DB, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("attribution store handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close attribution store: %w", err)
	}
	log.Info("Attribution store closed")
	return nil
}
