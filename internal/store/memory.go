package store

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"presale-core/internal/model"
)

// MemoryStore 基于 go-cache 的进程内存储，重启即丢失
// PENDING 记录带 TTL，被确认后不再过期
type MemoryStore struct {
	mu         sync.Mutex
	cache      *cache.Cache
	pendingTTL time.Duration
}

func NewMemoryStore(pendingTTL time.Duration) *MemoryStore {
	if pendingTTL <= 0 {
		pendingTTL = cache.NoExpiration
	}
	return &MemoryStore{
		cache:      cache.New(cache.NoExpiration, 10*time.Minute),
		pendingTTL: pendingTTL,
	}
}

func (s *MemoryStore) ttl(status model.Status) time.Duration {
	if status == model.StatusPending {
		return s.pendingTTL
	}
	return cache.NoExpiration
}

func (s *MemoryStore) Create(_ context.Context, intent *model.PurchaseIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	rec := intent.Clone()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	if err := s.cache.Add(rec.ID, rec, s.ttl(rec.Status)); err != nil {
		return ErrDuplicate
	}
	intent.CreatedAt, intent.UpdatedAt = rec.CreatedAt, rec.UpdatedAt
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.PurchaseIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.load(id)
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *MemoryStore) Transition(_ context.Context, id string, from, to model.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.load(id)
	if !ok {
		return ErrNotFound
	}
	if rec.Status != from {
		return ErrStatusConflict
	}

	next := rec.Clone()
	next.Status = to
	next.UpdatedAt = time.Now()
	s.cache.Set(id, next, s.ttl(to))
	return nil
}

func (s *MemoryStore) Complete(_ context.Context, id string, tokenAmount uint64, paymentSig, tokenSig string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.load(id)
	if !ok {
		return ErrNotFound
	}
	if rec.Status != model.StatusProcessing {
		return ErrStatusConflict
	}

	next := rec.Clone()
	next.Status = model.StatusCompleted
	next.TokenAmount = tokenAmount
	next.PaymentSignature = paymentSig
	next.TokenSignature = tokenSig
	next.UpdatedAt = time.Now()
	s.cache.Set(id, next, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, item := range s.cache.Items() {
		rec, ok := item.Object.(*model.PurchaseIntent)
		if !ok || rec.Status != model.StatusPending {
			continue
		}
		if rec.CreatedAt.Before(before) {
			s.cache.Delete(id)
			deleted++
		}
	}
	// go-cache 的 janitor 之外再主动清理一次已过期条目
	s.cache.DeleteExpired()
	return deleted, nil
}

// load 调用方需持有锁
func (s *MemoryStore) load(id string) (*model.PurchaseIntent, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	rec, ok := v.(*model.PurchaseIntent)
	return rec, ok
}
