package observability

import (
	"time"

	"go.uber.org/zap"
)

// Field helpers so callers outside this package do not import zap directly.

// String constructs a field with the given key and value.
func String(key, value string) zap.Field { return zap.String(key, value) }

// Int constructs a field with the given key and value.
func Int(key string, value int) zap.Field { return zap.Int(key, value) }

// Int64 constructs a field with the given key and value.
func Int64(key string, value int64) zap.Field { return zap.Int64(key, value) }

// Float64 constructs a field with the given key and value.
func Float64(key string, value float64) zap.Field { return zap.Float64(key, value) }

// Bool constructs a field with the given key and value.
func Bool(key string, value bool) zap.Field { return zap.Bool(key, value) }

// Duration constructs a field with the given key and value.
func Duration(key string, value time.Duration) zap.Field { return zap.Duration(key, value) }

// Any constructs a field with the given key and an arbitrary value.
func Any(key string, value interface{}) zap.Field { return zap.Any(key, value) }

// Error is shorthand for zap.Error.
func Error(err error) zap.Field { return zap.Error(err) }
