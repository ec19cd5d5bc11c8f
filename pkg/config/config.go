package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Solana  SolanaConfig  `mapstructure:"solana"`
	Presale PresaleConfig `mapstructure:"presale"`
	Store   StoreConfig   `mapstructure:"store"`
	DB      DBConfig      `mapstructure:"db"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	MQ      MQConfig      `mapstructure:"mq"`
	Worker  WorkerConfig  `mapstructure:"worker"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
	LogLevel string `mapstructure:"log_level"` // 为空时按环境决定
}

type SolanaConfig struct {
	RpcUrl              string        `mapstructure:"rpc_url"`
	TokenMint           string        `mapstructure:"token_mint"`      // 预售代币 Mint 地址
	StableDecimals      int32         `mapstructure:"stable_decimals"` // USDT 精度
	ConfirmTimeout      time.Duration `mapstructure:"confirm_timeout"`
	ConfirmPollInterval time.Duration `mapstructure:"confirm_poll_interval"`
}

type PresaleConfig struct {
	PrivateKey       string        `mapstructure:"private_key"`       // base58 编码的预售钱包私钥
	KeystorePath     string        `mapstructure:"keystore_path"`     // 加密 Keystore 文件路径 (优先于明文私钥)
	KeystorePassword string        `mapstructure:"keystore_password"` // 通常通过环境变量传入
	PendingTTL       time.Duration `mapstructure:"pending_ttl"`       // PENDING 订单保留时长
	SweepSpec        string        `mapstructure:"sweep_spec"`        // 过期清理的 cron 表达式
	ProgressFile     string        `mapstructure:"progress_file"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"` // "memory", "postgres" or "redis"
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

type MQConfig struct {
	Type  string `mapstructure:"type"` // "", "redis" or "kafka"
	Topic string `mapstructure:"topic"`
}

type WorkerConfig struct {
	Group       string `mapstructure:"group"`        // 消费者组
	Name        string `mapstructure:"name"`         // 消费者名称 (Redis Stream)
	ReceiptsDir string `mapstructure:"receipts_dir"` // 购买凭证输出目录
	MetricsAddr string `mapstructure:"metrics_addr"` // /metrics 监听地址，为空则不暴露
}

var Global Config

func Init() {
	// 兼容旧部署: 先加载 .env，再由 viper 读取环境变量
	_ = godotenv.Load(".env", ".env.local")

	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath(".")      // optionally look for config in the working directory
	viper.AddConfigPath("./config")

	// 环境变量设置
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindLegacyEnv()

	// 设置默认值
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

// bindLegacyEnv 保留旧版 .env 中使用的变量名
func bindLegacyEnv() {
	_ = viper.BindEnv("app.http_port", "PORT", "APP_HTTP_PORT")
	_ = viper.BindEnv("solana.token_mint", "TOKEN_MINT", "SOLANA_TOKEN_MINT")
	_ = viper.BindEnv("presale.private_key", "PRESALE_WALLET_PRIVATE_KEY", "PRESALE_PRIVATE_KEY")
	_ = viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "3000")
	viper.SetDefault("app.log_level", "")

	viper.SetDefault("solana.rpc_url", "https://api.mainnet-beta.solana.com")
	viper.SetDefault("solana.token_mint", "")
	viper.SetDefault("solana.stable_decimals", 6)
	viper.SetDefault("solana.confirm_timeout", 60*time.Second)
	viper.SetDefault("solana.confirm_poll_interval", 2*time.Second)

	// 没有默认值的 key 不会被 AutomaticEnv 解析进结构体，敏感项也需要显式声明
	viper.SetDefault("presale.private_key", "")
	viper.SetDefault("presale.keystore_path", "")
	viper.SetDefault("presale.keystore_password", "")
	viper.SetDefault("presale.pending_ttl", 24*time.Hour)
	viper.SetDefault("presale.sweep_spec", "@every 10m")
	viper.SetDefault("presale.progress_file", "progress.json")

	viper.SetDefault("store.driver", "memory")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "presale_user")
	viper.SetDefault("db.password", "presale_password")
	viper.SetDefault("db.name", "presale_db")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})

	viper.SetDefault("mq.type", "")
	viper.SetDefault("mq.topic", "presale_events_purchase")

	viper.SetDefault("worker.group", "presale_receipt_group")
	viper.SetDefault("worker.name", "receipt-worker-0")
	viper.SetDefault("worker.receipts_dir", "receipts")
	viper.SetDefault("worker.metrics_addr", ":9091")
}
