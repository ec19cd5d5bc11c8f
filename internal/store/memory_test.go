package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presale-core/internal/model"
)

func newIntent(id string) *model.PurchaseIntent {
	return &model.PurchaseIntent{
		ID:           id,
		BuyerAddress: "BuyerAddr1111111111111111111111111111111111",
		Amount:       decimal.RequireFromString("0.001"),
		Currency:     model.CurrencyStable,
		Status:       model.StatusPending,
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	require.NoError(t, s.Create(ctx, newIntent("t1")))
	assert.ErrorIs(t, s.Create(ctx, newIntent("t1")), ErrDuplicate)

	got, err := s.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Empty(t, got.TokenSignature)
	assert.False(t, got.CreatedAt.IsZero())

	// 修改返回值不影响存储
	got.Status = model.StatusCompleted
	again, _ := s.Get(ctx, "t1")
	assert.Equal(t, model.StatusPending, again.Status)

	// 未被锁定时不能直接完成
	assert.ErrorIs(t, s.Complete(ctx, "t1", 1, "pay", "tok"), ErrStatusConflict)

	require.NoError(t, s.Transition(ctx, "t1", model.StatusPending, model.StatusProcessing))
	assert.ErrorIs(t, s.Transition(ctx, "t1", model.StatusPending, model.StatusProcessing), ErrStatusConflict)

	require.NoError(t, s.Complete(ctx, "t1", 1_000_000_000_000, "pay", "tok"))
	done, err := s.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, done.Status)
	assert.Equal(t, uint64(1_000_000_000_000), done.TokenAmount)
	assert.Equal(t, "pay", done.PaymentSignature)
	assert.Equal(t, "tok", done.TokenSignature)
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Transition(ctx, "missing", model.StatusPending, model.StatusProcessing), ErrNotFound)
	assert.ErrorIs(t, s.Complete(ctx, "missing", 1, "", ""), ErrNotFound)
}

func TestMemoryStoreConcurrentClaim(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	require.NoError(t, s.Create(ctx, newIntent("race")))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Transition(ctx, "race", model.StatusPending, model.StatusProcessing); err == nil {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}

func TestMemoryStorePendingTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(20 * time.Millisecond)

	require.NoError(t, s.Create(ctx, newIntent("expiring")))
	require.NoError(t, s.Create(ctx, newIntent("claimed")))
	require.NoError(t, s.Transition(ctx, "claimed", model.StatusPending, model.StatusProcessing))

	time.Sleep(50 * time.Millisecond)

	_, err := s.Get(ctx, "expiring")
	assert.ErrorIs(t, err, ErrNotFound)

	// 已被锁定的记录不会过期
	_, err = s.Get(ctx, "claimed")
	assert.NoError(t, err)
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	old := newIntent("old")
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, s.Create(ctx, old))

	oldDone := newIntent("old-done")
	oldDone.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, s.Create(ctx, oldDone))
	require.NoError(t, s.Transition(ctx, "old-done", model.StatusPending, model.StatusProcessing))
	require.NoError(t, s.Complete(ctx, "old-done", 1, "p", "t"))

	require.NoError(t, s.Create(ctx, newIntent("fresh")))

	n, err := s.DeleteExpired(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "old-done")
	assert.NoError(t, err)
	_, err = s.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestNewStoreDrivers(t *testing.T) {
	s, err := New(Options{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = New(Options{Driver: "postgres"})
	assert.Error(t, err)

	_, err = New(Options{Driver: "redis"})
	assert.Error(t, err)

	_, err = New(Options{Driver: "mongo"})
	assert.Error(t, err)
}
