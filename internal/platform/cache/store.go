// Package cache provides the small TTL'd key/value stores used by the
// progress calculator. Callers that want no caching inject NoOpStore.
package cache

import "time"

// Store is a TTL'd byte cache. Implementations must be safe for concurrent
// use; writes for distinct keys never interfere.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

// NoOpStore satisfies Store while caching nothing.
type NoOpStore struct{}

func NewNoOpStore() *NoOpStore { return &NoOpStore{} }

func (*NoOpStore) Get(string) ([]byte, bool)         { return nil, false }
func (*NoOpStore) Set(string, []byte, time.Duration) {}
func (*NoOpStore) Delete(string)                     {}
