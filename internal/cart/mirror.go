package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	pkgredis "github.com/tahweela/tahweela-backend/pkg/redis"
)

// Mirror is the best-effort key/value copy of a cart. Load returns a nil
// payload when nothing is stored under key.
type Mirror interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartKey(storageKey string) string
}

// RedisMirror stores cart payloads under the namespaced cart key.
type RedisMirror struct {
	store kvStore
	ttl   time.Duration
}

// NewRedisMirror mirrors carts into redis. A zero ttl keeps keys forever.
func NewRedisMirror(store kvStore, ttl time.Duration) *RedisMirror {
	return &RedisMirror{store: store, ttl: ttl}
}

func (m *RedisMirror) Load(ctx context.Context, key string) ([]byte, error) {
	if m == nil || m.store == nil {
		return nil, fmt.Errorf("redis mirror not configured")
	}
	raw, err := m.store.Get(ctx, m.store.CartKey(key))
	if errors.Is(err, pkgredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

func (m *RedisMirror) Save(ctx context.Context, key string, payload []byte) error {
	if m == nil || m.store == nil {
		return fmt.Errorf("redis mirror not configured")
	}
	return m.store.Set(ctx, m.store.CartKey(key), string(payload), m.ttl)
}

// MemoryMirror keeps payloads in process. Used for local runs and tests.
type MemoryMirror struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{data: make(map[string][]byte)}
}

func (m *MemoryMirror) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), payload...), nil
}

func (m *MemoryMirror) Save(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), payload...)
	return nil
}

func encodeLines(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

func decodeLines(payload []byte) ([]Line, error) {
	var lines []Line
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil, fmt.Errorf("decode cart payload: %w", err)
	}
	return lines, nil
}
