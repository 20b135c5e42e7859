package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cookbook/catalog/internal/ports/outbound"
)

// KeyValueStore implements outbound.KeyValueStore on a gorm table
type KeyValueStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewKeyValueStore creates a key-value store backed by db
func NewKeyValueStore(db *gorm.DB, logger *zap.Logger) *KeyValueStore {
	return &KeyValueStore{
		db:     db,
		logger: logger.Named("sqlite-kv"),
	}
}

// Get retrieves the value stored under key
func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row KeyValueModel
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, outbound.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return row.Value, nil
}

// Set upserts value under key
func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	row := KeyValueModel{Key: key, Value: value, UpdatedAt: time.Now().UTC()}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		s.logger.Error("Failed to write key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *KeyValueStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&KeyValueModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Ping checks the underlying connection
func (s *KeyValueStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection
func (s *KeyValueStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
