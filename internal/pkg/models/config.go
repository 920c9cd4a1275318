package models

import "time"

// Config represents application configuration
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	NATS       NATSConfig
	JWT        JWTConfig
	NewRelic   NewRelicConfig
	Logger     LoggerConfig
	Chain      ChainConfig
	Jobs       JobsConfig
	Settlement SettlementConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	Username    string
	Password    string
	Database    string
	SSLMode     string
	MaxConns    int
	IdleConns   int
	AutoMigrate bool
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL           string
	JobStream     string
	NoticeSubject string
	AlertSubject  string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
}

// LoggerConfig contains zap logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// ChainConfig describes the EVM chain and the curation contract to follow
type ChainConfig struct {
	RPCURL          string
	ChainID         int64
	ContractAddress string
	TokenAddress    string
	TokenDecimals   int32
	GenesisBlock    uint64
	Confirmations   uint64
	MaxBlockRange   uint64
	MaxBlocksPerRun uint64
	SyncInterval    time.Duration
	LockTTL         time.Duration
	RPCTimeout      time.Duration
}

// JobsConfig tunes the background job workers
type JobsConfig struct {
	Concurrency   int
	MaxAttempts   int
	BackoffBase   time.Duration
	BackoffMax    time.Duration
	ChainDelay    time.Duration
	ChainAttempts int
	ChainBackoff  time.Duration
}

// SettlementConfig holds the off-chain transfer policy
type SettlementConfig struct {
	PerTransferCap    string
	DailyCap          string
	Timezone          string
	TransferRateLimit int // requests per user per minute, 0 disables
}
