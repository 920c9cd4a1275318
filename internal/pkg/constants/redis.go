package constants

// Redis key formats
const (
	// Watcher lock: ledger:lock:sync:{chain_id}:{contract}
	KeyWatcherLock = "ledger:lock:sync:%d:%s"

	// Cache tag set per node: cache:tag:{type}:{id}
	KeyCacheTag = "cache:tag:%s:%s"
)
