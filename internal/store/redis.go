package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"presale-core/internal/model"
)

const keyPrefix = "presale:intent:"

// RedisClient 存储所需的 go-redis 能力 (*redis.Client 或 *redis.ClusterClient)
type RedisClient interface {
	redis.Cmdable
	Watch(ctx context.Context, fn func(*redis.Tx) error, keys ...string) error
}

// RedisStore 每条记录一个 JSON 字符串键
// PENDING 记录带过期时间，状态切换使用 WATCH/MULTI 乐观事务
type RedisStore struct {
	client     RedisClient
	pendingTTL time.Duration
}

func NewRedisStore(client RedisClient, pendingTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, pendingTTL: pendingTTL}
}

func (s *RedisStore) key(id string) string {
	return keyPrefix + id
}

// ttl 为 0 时 SET 会清除已有过期时间
func (s *RedisStore) ttl(status model.Status) time.Duration {
	if status == model.StatusPending && s.pendingTTL > 0 {
		return s.pendingTTL
	}
	return 0
}

func (s *RedisStore) Create(ctx context.Context, intent *model.PurchaseIntent) error {
	now := time.Now()
	if intent.CreatedAt.IsZero() {
		intent.CreatedAt = now
	}
	intent.UpdatedAt = now

	data, err := json.Marshal(intent)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, s.key(intent.ID), data, s.ttl(intent.Status)).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return ErrDuplicate
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*model.PurchaseIntent, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var intent model.PurchaseIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, fmt.Errorf("decode purchase intent: %w", err)
	}
	return &intent, nil
}

func (s *RedisStore) Transition(ctx context.Context, id string, from, to model.Status) error {
	return s.update(ctx, id, func(p *model.PurchaseIntent) error {
		if p.Status != from {
			return ErrStatusConflict
		}
		p.Status = to
		return nil
	})
}

func (s *RedisStore) Complete(ctx context.Context, id string, tokenAmount uint64, paymentSig, tokenSig string) error {
	return s.update(ctx, id, func(p *model.PurchaseIntent) error {
		if p.Status != model.StatusProcessing {
			return ErrStatusConflict
		}
		p.Status = model.StatusCompleted
		p.TokenAmount = tokenAmount
		p.PaymentSignature = paymentSig
		p.TokenSignature = tokenSig
		return nil
	})
}

// update 在 WATCH 保护下读取-修改-写回，键被并发修改时事务失败即视为冲突
func (s *RedisStore) update(ctx context.Context, id string, mutate func(p *model.PurchaseIntent) error) error {
	key := s.key(id)

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return err
		}

		var intent model.PurchaseIntent
		if err := json.Unmarshal(raw, &intent); err != nil {
			return fmt.Errorf("decode purchase intent: %w", err)
		}
		if err := mutate(&intent); err != nil {
			return err
		}
		intent.UpdatedAt = time.Now()

		data, err := json.Marshal(&intent)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl(intent.Status))
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStatusConflict
	}
	return err
}

func (s *RedisStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				return err
			}
			var intent model.PurchaseIntent
			if err := json.Unmarshal(raw, &intent); err != nil {
				return err
			}
			if intent.Status != model.StatusPending || !intent.CreatedAt.Before(before) {
				return nil
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
			if err == nil {
				deleted++
			}
			return err
		}, key)
		// 键已过期或被并发修改，跳过即可
		if err != nil && !errors.Is(err, redis.Nil) && !errors.Is(err, redis.TxFailedErr) {
			return deleted, fmt.Errorf("delete expired intent %s: %w", key, err)
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("redis scan: %w", err)
	}
	return deleted, nil
}
