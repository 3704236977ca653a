package reconcile

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/texttopay/internal/models"
)

// Storage entry names, one JSON array each.
const (
	KeyPayments  = "payments"
	KeyCustomers = "customers"
	KeyActivity  = "activity"
)

// Storage is the console's durable key/value store.
type Storage interface {
	// Get reports ok=false when key has never been set or was removed.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryStorage keeps entries for the life of the process.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MemoryStorage) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// GormStorage stores one client_storage row per key.
type GormStorage struct {
	db *gorm.DB
}

func NewGormStorage(db *gorm.DB) *GormStorage { return &GormStorage{db: db} }

func (g *GormStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.ClientStorageEntry
	err := g.db.WithContext(ctx).Where(&models.ClientStorageEntry{Key: key}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (g *GormStorage) Set(ctx context.Context, key, value string) error {
	entry := models.ClientStorageEntry{Key: key, Value: value}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (g *GormStorage) Remove(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Where(&models.ClientStorageEntry{Key: key}).Delete(&models.ClientStorageEntry{}).Error
}
