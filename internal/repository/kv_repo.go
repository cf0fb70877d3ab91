package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrKeyNotFound = errors.New("key not found")

type kvEntryModel struct {
	Key       string     `gorm:"column:entry_key;primaryKey;size:160"`
	Value     []byte     `gorm:"column:value"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (kvEntryModel) TableName() string { return "kv_entries" }

// KVRepository is a key-value table on top of the SQL database.
// A zero TTL stores the entry without expiry.
type KVRepository struct {
	db *gorm.DB
}

func NewKVRepository(db *gorm.DB) *KVRepository {
	return &KVRepository{db: db}
}

func (r *KVRepository) Migrate() error {
	return r.db.AutoMigrate(&kvEntryModel{})
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var m kvEntryModel
	err := r.db.WithContext(ctx).
		Where("entry_key = ?", key).
		Where("expires_at IS NULL OR expires_at > ?", time.Now().UTC()).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.Value, nil
}

func (r *KVRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m := kvEntryModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if ttl > 0 {
		exp := m.UpdatedAt.Add(ttl)
		m.ExpiresAt = &exp
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&m).Error
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("entry_key = ?", key).
		Delete(&kvEntryModel{}).Error
}

// DeleteExpired removes entries whose TTL has passed and reports how many.
func (r *KVRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now().UTC()).
		Delete(&kvEntryModel{})
	return tx.RowsAffected, tx.Error
}
