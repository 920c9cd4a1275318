package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/spf13/viper"
)

var defaults = map[string]interface{}{
	"APP_NAME":    "ledgersync",
	"APP_ENV":     "local",
	"APP_DEBUG":   false,
	"APP_VERSION": "dev",

	"SERVER_HOST":             "0.0.0.0",
	"SERVER_PORT":             9990,
	"SERVER_READ_TIMEOUT":     10,
	"SERVER_WRITE_TIMEOUT":    10,
	"SERVER_SHUTDOWN_TIMEOUT": 30,

	"DB_DRIVER":       "pgx",
	"DB_HOST":         "localhost",
	"DB_PORT":         5432,
	"DB_SSL_MODE":     "disable",
	"DB_MAX_CONNS":    20,
	"DB_IDLE_CONNS":   5,
	"DB_AUTO_MIGRATE": false,

	"REDIS_HOST":      "localhost",
	"REDIS_PORT":      6379,
	"REDIS_DB":        0,
	"REDIS_POOL_SIZE": 10,

	"NATS_URL":            "nats://localhost:4222",
	"NATS_JOB_STREAM":     "LEDGER_JOBS",
	"NATS_NOTICE_SUBJECT": "ledger.notice",
	"NATS_ALERT_SUBJECT":  "ops.alert",

	"JWT_EXPIRATION": 60,
	"JWT_ISSUER":     "ledgersync",

	"NEW_RELIC_ENABLED":      false,
	"NEW_RELIC_LOGS_ENABLED": false,

	"LOG_LEVEL":     "info",
	"LOG_FILE_PATH": "",

	"CHAIN_ID":                 int64(10),
	"CHAIN_TOKEN_DECIMALS":     6,
	"CHAIN_GENESIS_BLOCK":      uint64(0),
	"CHAIN_CONFIRMATIONS":      uint64(12),
	"CHAIN_MAX_BLOCK_RANGE":    uint64(2000),
	"CHAIN_MAX_BLOCKS_PER_RUN": uint64(10000),
	"CHAIN_SYNC_INTERVAL":      "30s",
	"CHAIN_LOCK_TTL":           "5m",
	"CHAIN_RPC_TIMEOUT":        "15s",

	"JOBS_CONCURRENCY":    4,
	"JOBS_MAX_ATTEMPTS":   5,
	"JOBS_BACKOFF_BASE":   "5s",
	"JOBS_BACKOFF_MAX":    "10m",
	"JOBS_CHAIN_DELAY":    "5s",
	"JOBS_CHAIN_ATTEMPTS": 8,
	"JOBS_CHAIN_BACKOFF":  "10s",

	"SETTLEMENT_PER_TRANSFER_CAP": "1000",
	"SETTLEMENT_DAILY_CAP":        "5000",
	"SETTLEMENT_TIMEZONE":         "Asia/Hong_Kong",
	"SETTLEMENT_RATE_LIMIT":       30,
}

// InitConfig loads the env file when running locally, then builds config from the environment
func InitConfig(configPath string) *models.Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if v.GetString("APP_ENV") == "local" && configPath != "" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	return loadConfig(v)
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	configs.Database.Driver = v.GetString("DB_DRIVER")
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")
	configs.Database.AutoMigrate = v.GetBool("DB_AUTO_MIGRATE")

	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	configs.NATS.URL = v.GetString("NATS_URL")
	configs.NATS.JobStream = v.GetString("NATS_JOB_STREAM")
	configs.NATS.NoticeSubject = v.GetString("NATS_NOTICE_SUBJECT")
	configs.NATS.AlertSubject = v.GetString("NATS_ALERT_SUBJECT")

	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")

	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")
	configs.NewRelic.LogsEnabled = v.GetBool("NEW_RELIC_LOGS_ENABLED")

	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	configs.Chain.RPCURL = v.GetString("CHAIN_RPC_URL")
	configs.Chain.ChainID = v.GetInt64("CHAIN_ID")
	configs.Chain.ContractAddress = v.GetString("CHAIN_CONTRACT_ADDRESS")
	configs.Chain.TokenAddress = v.GetString("CHAIN_TOKEN_ADDRESS")
	configs.Chain.TokenDecimals = v.GetInt32("CHAIN_TOKEN_DECIMALS")
	configs.Chain.GenesisBlock = v.GetUint64("CHAIN_GENESIS_BLOCK")
	configs.Chain.Confirmations = v.GetUint64("CHAIN_CONFIRMATIONS")
	configs.Chain.MaxBlockRange = v.GetUint64("CHAIN_MAX_BLOCK_RANGE")
	configs.Chain.MaxBlocksPerRun = v.GetUint64("CHAIN_MAX_BLOCKS_PER_RUN")
	configs.Chain.SyncInterval = durationOr(v, "CHAIN_SYNC_INTERVAL", 30*time.Second)
	configs.Chain.LockTTL = durationOr(v, "CHAIN_LOCK_TTL", 5*time.Minute)
	configs.Chain.RPCTimeout = durationOr(v, "CHAIN_RPC_TIMEOUT", 15*time.Second)

	configs.Jobs.Concurrency = v.GetInt("JOBS_CONCURRENCY")
	configs.Jobs.MaxAttempts = v.GetInt("JOBS_MAX_ATTEMPTS")
	configs.Jobs.BackoffBase = durationOr(v, "JOBS_BACKOFF_BASE", 5*time.Second)
	configs.Jobs.BackoffMax = durationOr(v, "JOBS_BACKOFF_MAX", 10*time.Minute)
	configs.Jobs.ChainDelay = durationOr(v, "JOBS_CHAIN_DELAY", 5*time.Second)
	configs.Jobs.ChainAttempts = v.GetInt("JOBS_CHAIN_ATTEMPTS")
	configs.Jobs.ChainBackoff = durationOr(v, "JOBS_CHAIN_BACKOFF", 10*time.Second)

	configs.Settlement.PerTransferCap = v.GetString("SETTLEMENT_PER_TRANSFER_CAP")
	configs.Settlement.DailyCap = v.GetString("SETTLEMENT_DAILY_CAP")
	configs.Settlement.Timezone = v.GetString("SETTLEMENT_TIMEZONE")
	configs.Settlement.TransferRateLimit = v.GetInt("SETTLEMENT_RATE_LIMIT")

	return configs
}

// durationOr parses a duration, falling back when the value is malformed
func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default: %s", key, fallback)
		return fallback
	}
	return d
}
