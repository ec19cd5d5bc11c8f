package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"presale-core/internal/model"
)

// GormStore PostgreSQL 存储，状态切换依赖带条件的 UPDATE 保证原子性
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, intent *model.PurchaseIntent) error {
	if err := s.db.WithContext(ctx).Create(intent).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("create purchase intent: %w", err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*model.PurchaseIntent, error) {
	var intent model.PurchaseIntent
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&intent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get purchase intent: %w", err)
	}
	return &intent, nil
}

func (s *GormStore) Transition(ctx context.Context, id string, from, to model.Status) error {
	return s.casUpdate(ctx, id, from, map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	})
}

func (s *GormStore) Complete(ctx context.Context, id string, tokenAmount uint64, paymentSig, tokenSig string) error {
	return s.casUpdate(ctx, id, model.StatusProcessing, map[string]interface{}{
		"status":            model.StatusCompleted,
		"token_amount":      tokenAmount,
		"payment_signature": paymentSig,
		"token_signature":   tokenSig,
		"updated_at":        time.Now(),
	})
}

// casUpdate UPDATE ... WHERE id = ? AND status = ?，影响行数为 0 即视为冲突
func (s *GormStore) casUpdate(ctx context.Context, id string, from model.Status, values map[string]interface{}) error {
	res := s.db.WithContext(ctx).
		Model(&model.PurchaseIntent{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update purchase intent: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (s *GormStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.StatusPending, before).
		Delete(&model.PurchaseIntent{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired intents: %w", res.Error)
	}
	return res.RowsAffected, nil
}
