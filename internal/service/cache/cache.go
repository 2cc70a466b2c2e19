package cache

import "time"

// BytesCache stores serialized analysis results keyed by run parameters.
// A zero or negative ttl means the entry never expires.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}
