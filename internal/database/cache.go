package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// CacheBuilder assembles a single valkey read or write. A nil client turns
// every call into a miss so callers can run without a cache.
type CacheBuilder struct {
	client CacheClient
	key    string
	value  any
	ttl    time.Duration
	ctx    context.Context
}

func NewCacheBuilder(client CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    key,
		ctx:    context.Background(),
	}
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	if ctx != nil {
		b.ctx = ctx
	}
	return b
}

func (b *CacheBuilder) Set() error {
	if b.client == nil {
		return nil
	}
	if b.key == "" {
		return fmt.Errorf("cache key is empty")
	}

	payload, err := json.Marshal(b.value)
	if err != nil {
		return fmt.Errorf("marshal cache value %s: %w", b.key, err)
	}

	var cmd valkey.Completed
	if b.ttl > 0 {
		cmd = b.client.B().Set().Key(b.key).Value(string(payload)).Ex(b.ttl).Build()
	} else {
		cmd = b.client.B().Set().Key(b.key).Value(string(payload)).Build()
	}

	return b.client.Do(b.ctx, cmd).Error()
}

// Get decodes the cached value into dest. found is false on a miss.
func (b *CacheBuilder) Get(dest any) (found bool, err error) {
	if b.client == nil {
		return false, nil
	}

	payload, err := b.client.Do(b.ctx, b.client.B().Get().Key(b.key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get cache value %s: %w", b.key, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("unmarshal cache value %s: %w", b.key, err)
	}

	return true, nil
}

// Increment bumps the integer stored at the key and returns the new value.
// A missing key counts from zero.
func (b *CacheBuilder) Increment() (int64, error) {
	if b.client == nil {
		return 0, nil
	}

	value, err := b.client.Do(b.ctx, b.client.B().Incr().Key(b.key).Build()).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("increment cache value %s: %w", b.key, err)
	}
	return value, nil
}

func (b *CacheBuilder) Delete() error {
	if b.client == nil {
		return nil
	}
	return b.client.Do(b.ctx, b.client.B().Del().Key(b.key).Build()).Error()
}
