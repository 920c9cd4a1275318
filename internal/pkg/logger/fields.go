package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field aliases zap.Field so callers don't import zap directly
type Field = zap.Field

func String(key, val string) Field {
	return zap.String(key, val)
}

func Err(err error) Field {
	return zap.Error(err)
}

func Int(key string, val int) Field {
	return zap.Int(key, val)
}

func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

func Uint64(key string, val uint64) Field {
	return zap.Uint64(key, val)
}

func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

func Any(key string, val interface{}) Field {
	return zap.Any(key, val)
}

func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

// Stringer constructs a field from a fmt.Stringer, e.g. decimal.Decimal or *big.Int
func Stringer(key string, val interface{ String() string }) Field {
	return zap.Stringer(key, val)
}
