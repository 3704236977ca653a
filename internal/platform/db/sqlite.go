package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fatflowers/texttopay/internal/models"
	gormzap "github.com/fatflowers/texttopay/pkg/gormlog"
)

// OpenClientStore opens the console's local storage file and makes sure the
// client_storage table exists. path may be ":memory:".
func OpenClientStore(l *zap.SugaredLogger, path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormzap.New(l)})
	if err != nil {
		return nil, fmt.Errorf("open client store %s: %w", path, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("open client store %s: %w", path, err)
	}
	// sqlite has a single writer, and ":memory:" is per connection
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(&models.ClientStorageEntry{}); err != nil {
		return nil, fmt.Errorf("migrate client store: %w", err)
	}
	return gdb, nil
}
