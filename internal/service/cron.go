package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"presale-core/internal/store"
	"presale-core/pkg/logger"
	"presale-core/pkg/monitor"
	"presale-core/pkg/utils/lock"
)

const sweepLockKey = "cron:lock:sweep_expired_intents"

type CronService struct {
	cron       *cron.Cron
	store      store.Store
	locker     lock.DistributedLock
	spec       string
	pendingTTL time.Duration
}

// NewCronService 多实例部署时传入 RedisLock，单实例可使用 NoopLock
func NewCronService(st store.Store, locker lock.DistributedLock, spec string, pendingTTL time.Duration) *CronService {
	// 标准配置 (分级)，spec 也支持 @every 形式
	return &CronService{
		cron:       cron.New(),
		store:      st,
		locker:     locker,
		spec:       spec,
		pendingTTL: pendingTTL,
	}
}

func (s *CronService) Start() error {
	if s.pendingTTL <= 0 {
		logger.Info("未配置 pending_ttl，跳过过期清理任务")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.SweepExpired); err != nil {
		return fmt.Errorf("invalid sweep spec %q: %w", s.spec, err)
	}

	s.cron.Start()
	logger.Info("Cron Service started", zap.String("sweep_spec", s.spec))
	return nil
}

// Stop 等待正在执行的任务结束
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("Cron Service stopped")
}

// SweepExpired 删除超过 pending_ttl 仍未确认的购买意向
func (s *CronService) SweepExpired() {
	ctx := context.Background()

	// 1. 获取分布式锁，防止多实例同时执行
	locked, err := s.locker.Acquire(ctx, sweepLockKey, time.Minute)
	if err != nil || !locked {
		logger.Debug("SweepExpired: 获取锁失败或已有实例在运行", zap.Error(err))
		return
	}
	defer func() {
		if err := s.locker.Release(ctx, sweepLockKey); err != nil {
			logger.Warn("SweepExpired: 释放锁失败", zap.Error(err))
		}
	}()

	// 2. 清理
	before := time.Now().Add(-s.pendingTTL)
	n, err := s.store.DeleteExpired(ctx, before)
	if err != nil {
		logger.Error("清理过期购买意向失败", zap.Error(err))
		return
	}
	if n > 0 {
		monitor.Business.ExpiredIntentsTotal.Add(float64(n))
		logger.Info("已清理过期购买意向", zap.Int64("count", n), zap.Time("before", before))
	}
}
