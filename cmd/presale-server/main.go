package main

import (
	"context"

	"presale-core/internal/handler"
	"presale-core/internal/ledger"
	"presale-core/internal/model"
	"presale-core/internal/server"
	"presale-core/internal/service"
	"presale-core/internal/service/mq"
	"presale-core/internal/storage"
	"presale-core/internal/store"

	"presale-core/pkg/config"
	"presale-core/pkg/database"
	"presale-core/pkg/logger"
	"presale-core/pkg/utils/lock"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "presale-core/docs/swagger"
)

// @title Presale Server API
// @version 1.0
// @description Token presale purchase broker

// @host localhost:3000
// @BasePath /
func main() {
	// 0. 初始化 Config
	config.Init()
	cfg := config.Global

	// 1. 初始化 Logger
	logger.Init(logger.Options{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "presale-server"})
	defer logger.Sync()

	// 2. 加载预售钱包 (失败直接退出)
	signer, err := ledger.LoadSigner(cfg.Presale)
	if err != nil {
		logger.Fatal("预售钱包私钥加载失败", zap.Error(err))
	}
	mint, err := ledger.ParseMint(cfg.Solana.TokenMint)
	if err != nil {
		logger.Fatal("预售代币配置错误", zap.Error(err))
	}
	logger.Info("预售钱包已加载",
		zap.String("wallet", signer.PublicKey().String()),
		zap.String("mint", mint.String()))

	// 3. 连接 Redis (仅在存储、消息队列需要时)
	var rdb *redis.Client
	if cfg.Store.Driver == "redis" || cfg.MQ.Type == "redis" {
		rdb, err = database.ConnectRedis(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("Redis 连接失败", zap.Error(err))
		}
	}

	// 4. 连接数据库 (仅 postgres 存储)
	var db *gorm.DB
	if cfg.Store.Driver == "postgres" {
		dsn := database.BuildPostgresDSN(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
		db, err = database.ConnectPostgres(dsn, cfg.App.Env)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}
		if cfg.App.Env == "development" {
			logger.Info("开发环境: 自动迁移 Schema (GORM AutoMigrate)...")
			if err := db.AutoMigrate(model.AllModels()...); err != nil {
				logger.Fatal("数据库自动迁移失败", zap.Error(err))
			}
		} else {
			logger.Info("生产环境: 跳过 AutoMigrate，请使用 migrate 工具管理 Schema")
		}
	}

	// 5. 初始化存储
	opts := store.Options{Driver: cfg.Store.Driver, PendingTTL: cfg.Presale.PendingTTL, DB: db}
	if rdb != nil {
		opts.Redis = rdb
	}
	st, err := store.New(opts)
	if err != nil {
		logger.Fatal("初始化存储失败", zap.Error(err))
	}
	logger.Info("购买意向存储", zap.String("driver", cfg.Store.Driver))

	// 6. 初始化消息队列
	producer, err := mq.NewProducer(cfg.MQ.Type, cfg.Kafka.Brokers, cfg.MQ.Topic, rdb)
	if err != nil {
		logger.Fatal("初始化消息队列失败", zap.Error(err))
	}

	// 7. 初始化业务服务
	client := ledger.NewSolanaClient(cfg.Solana.RpcUrl, cfg.Solana.ConfirmTimeout, cfg.Solana.ConfirmPollInterval)
	service.Purchase = service.NewPurchaseService(
		st,
		service.NewPaymentVerifier(client, cfg.Solana.StableDecimals),
		service.NewDisburser(client, signer, mint),
		producer,
		cfg.MQ.Topic,
	)

	// 8. 启动过期清理任务
	var locker lock.DistributedLock = lock.NoopLock{}
	if rdb != nil {
		locker = lock.NewRedisLock(rdb)
	}
	cronService := service.NewCronService(st, locker, cfg.Presale.SweepSpec, cfg.Presale.PendingTTL)
	if err := cronService.Start(); err != nil {
		logger.Fatal("启动定时任务失败", zap.Error(err))
	}

	// 9. save-progress 写入器
	progressWriter, err := storage.NewProgressWriter(cfg.Presale.ProgressFile)
	if err != nil {
		logger.Fatal("初始化进度文件失败", zap.Error(err))
	}
	handler.Progress = handler.NewProgressHandler(progressWriter)

	// 10. 启动应用
	app := server.New(server.Config{HttpPort: cfg.App.HttpPort}, server.NewHTTPRouter())

	// 11. 退出后资源清理
	app.OnShutdown(func() {
		if db != nil {
			logger.Info("正在关闭数据库连接...")
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if rdb != nil {
			_ = rdb.Close()
		}
	})
	app.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			logger.Warn("关闭消息队列失败", zap.Error(err))
		}
	})
	app.OnShutdown(cronService.Stop)

	// 运行 (阻塞)
	app.Run()
}
