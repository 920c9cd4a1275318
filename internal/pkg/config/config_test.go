package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg := InitConfig("")

	assert.Equal(t, "ledgersync", cfg.App.Name)
	assert.Equal(t, 9990, cfg.Server.Port)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, uint64(2000), cfg.Chain.MaxBlockRange)
	assert.Equal(t, uint64(10000), cfg.Chain.MaxBlocksPerRun)
	assert.Equal(t, uint64(12), cfg.Chain.Confirmations)
	assert.Equal(t, 5*time.Minute, cfg.Chain.LockTTL)
	assert.Equal(t, int32(6), cfg.Chain.TokenDecimals)
	assert.Equal(t, 30*time.Second, cfg.Chain.SyncInterval)
	assert.Equal(t, 8, cfg.Jobs.ChainAttempts)
	assert.Equal(t, 10*time.Second, cfg.Jobs.ChainBackoff)
	assert.Equal(t, "Asia/Hong_Kong", cfg.Settlement.Timezone)
	assert.Equal(t, "ops.alert", cfg.NATS.AlertSubject)
}

func TestInitConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CHAIN_CONFIRMATIONS", "64")
	t.Setenv("CHAIN_SYNC_INTERVAL", "1m")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("CHAIN_CONTRACT_ADDRESS", "0x00000000000000000000000000000000000000aa")

	cfg := InitConfig("")

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, uint64(64), cfg.Chain.Confirmations)
	assert.Equal(t, time.Minute, cfg.Chain.SyncInterval)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", cfg.Chain.ContractAddress)
}

func TestInitConfig_LocalEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGER_TEST_CHAIN_ID=137\nCHAIN_RPC_URL=http://rpc.local\n"), 0o600))

	t.Setenv("APP_ENV", "local")
	t.Setenv("CHAIN_RPC_URL", "")
	os.Unsetenv("CHAIN_RPC_URL")
	t.Cleanup(func() { os.Unsetenv("LEDGER_TEST_CHAIN_ID") })

	cfg := InitConfig(path)

	assert.Equal(t, "http://rpc.local", cfg.Chain.RPCURL)
	assert.Equal(t, "137", os.Getenv("LEDGER_TEST_CHAIN_ID"))
}

func TestInitConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JOBS_BACKOFF_BASE", "soon")

	cfg := InitConfig("")

	assert.Equal(t, 5*time.Second, cfg.Jobs.BackoffBase)
}
