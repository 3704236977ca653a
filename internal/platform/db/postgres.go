package db

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fatflowers/texttopay/internal/models"
	cfgpkg "github.com/fatflowers/texttopay/pkg/config"
	gormzap "github.com/fatflowers/texttopay/pkg/gormlog"
)

// NewDB opens the receipt-log database. It returns a nil *gorm.DB when no DSN
// is configured; the service stays stateless in that case.
func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	if cfg.Database.DSN == "" {
		l.Infow("database DSN is empty, webhook receipt log disabled")
		return nil, nil
	}
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{Logger: gormzap.New(l)})
	if err != nil {
		l.Errorf("failed to connect database: %v", err)
		return nil, err
	}
	l.Infow("connected to postgres via DSN")
	return db, nil
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(registerDBClose),
)

// AutoMigrate runs GORM migrations on startup
func AutoMigrate(l *zap.SugaredLogger, db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(&models.PaymentNotificationLog{}); err != nil {
		l.Errorf("automigrate failed: %v", err)
		return err
	}
	l.Infow("automigrate completed")
	return nil
}

// registerDBClose ensures the underlying *sql.DB is closed on shutdown
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	if gdb == nil {
		return
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return Close(l, gdb)
		},
	})
}

// Close releases the connection pool behind gdb.
func Close(l *zap.SugaredLogger, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		l.Warnw("gorm: get sql.DB failed", "err", err)
		return nil
	}
	l.Infow("closing database connection pool")
	return sqlDB.Close()
}
