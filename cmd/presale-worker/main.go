package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"presale-core/internal/event"
	"presale-core/internal/service/mq"
	"presale-core/internal/storage"

	"presale-core/pkg/config"
	"presale-core/pkg/database"
	"presale-core/pkg/logger"
	"presale-core/pkg/monitor"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// presale-worker 消费购买完成事件，为每笔订单落地一份购买凭证
func main() {
	// 0. 初始化 Config 与 Logger
	config.Init()
	cfg := config.Global
	logger.Init(logger.Options{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "presale-worker"})
	defer logger.Sync()

	if cfg.MQ.Type == "" {
		logger.Fatal("未配置 mq.type，worker 无事可做")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. 连接 Redis (仅 Redis Stream)
	var rdb *redis.Client
	if cfg.MQ.Type == "redis" {
		var err error
		rdb, err = database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("Redis 连接失败", zap.Error(err))
		}
		defer rdb.Close()
	}

	// 2. 初始化消费者与凭证存储
	consumer, err := mq.NewConsumer(cfg.MQ.Type, cfg.Kafka.Brokers, cfg.Worker.Group, workerName(cfg.Worker.Name), rdb)
	if err != nil {
		logger.Fatal("初始化消费者失败", zap.Error(err))
	}
	defer consumer.Close()

	receipts, err := storage.NewFileStore(cfg.Worker.ReceiptsDir)
	if err != nil {
		logger.Fatal("初始化凭证目录失败", zap.Error(err))
	}

	// 3. 暴露 worker 指标
	if cfg.Worker.MetricsAddr != "" {
		monitor.Init()
		metricsSrv := newMetricsServer(cfg.Worker.MetricsAddr)
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("指标服务异常退出", zap.Error(err))
			}
		}()
		defer metricsSrv.Close()
	}

	// 4. 阻塞消费，直到收到退出信号
	logger.Info("Presale worker started", zap.String("mq", cfg.MQ.Type), zap.String("topic", cfg.MQ.Topic))
	err = consumer.Subscribe(ctx, cfg.MQ.Topic, func(msg *mq.Message) error {
		return handlePurchaseCompleted(ctx, receipts, msg)
	})
	if err != nil {
		logger.Fatal("订阅失败", zap.Error(err))
	}
	logger.Info("Presale worker stopped")
}

func handlePurchaseCompleted(ctx context.Context, receipts *storage.FileStore, msg *mq.Message) error {
	var evt event.PurchaseCompletedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		// 格式错误的消息重试也没有意义，记录后丢弃
		logger.Error("无法解析购买事件", zap.String("id", msg.ID), zap.Error(err))
		return nil
	}

	data, err := json.MarshalIndent(evt, "", "  ")
	if err != nil {
		return err
	}
	key, err := receipts.Write(ctx, fmt.Sprintf("%s.json", evt.PurchaseID), data)
	if err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}

	monitor.Business.EventsConsumedTotal.WithLabelValues(evt.Currency).Inc()
	logger.Info("购买凭证已生成",
		zap.String("purchase_id", evt.PurchaseID),
		zap.String("buyer", evt.BuyerAddress),
		zap.Uint64("token_amount", evt.TokenAmount),
		zap.String("receipt", key))
	return nil
}

func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux}
}

func workerName(name string) string {
	if name != "" {
		return name
	}
	host, _ := os.Hostname()
	return "receipt-" + host
}
