package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"presale-core/internal/model"
)

var (
	ErrNotFound       = errors.New("purchase intent not found")
	ErrStatusConflict = errors.New("purchase intent status conflict")
	ErrDuplicate      = errors.New("purchase intent already exists")
)

// Store 购买意向存储
// 所有状态变更都必须通过 Transition/Complete 原子完成，调用方不能直接修改记录
type Store interface {
	Create(ctx context.Context, intent *model.PurchaseIntent) error
	Get(ctx context.Context, id string) (*model.PurchaseIntent, error)
	// Transition 仅当当前状态为 from 时才切换到 to (CAS)
	Transition(ctx context.Context, id string, from, to model.Status) error
	// Complete 将 PROCESSING 的记录标记为 COMPLETED，并写入发放结果
	Complete(ctx context.Context, id string, tokenAmount uint64, paymentSig, tokenSig string) error
	// DeleteExpired 删除创建时间早于 before 的 PENDING 记录
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Options 存储后端所需的依赖，按 Driver 取用
type Options struct {
	Driver     string
	PendingTTL time.Duration
	DB         *gorm.DB
	Redis      RedisClient
}

// New 根据驱动名称创建存储
func New(opts Options) (Store, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemoryStore(opts.PendingTTL), nil
	case "postgres":
		if opts.DB == nil {
			return nil, errors.New("postgres store requires a database connection")
		}
		return NewGormStore(opts.DB), nil
	case "redis":
		if opts.Redis == nil {
			return nil, errors.New("redis store requires a redis client")
		}
		return NewRedisStore(opts.Redis, opts.PendingTTL), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", opts.Driver)
	}
}
