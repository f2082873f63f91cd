// Package storage はカスタムアセットを保存する永続キーバリューストアを提供します。
package storage

import (
	"context"
	"sync"
)

// Store は永続キーバリューストアの契約です。値は JSON 文字列をそのまま保持します。
type Store interface {
	// Get はキーに対応する値を返します。キーが存在しない場合は ok=false です。
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set はキーの値を丸ごと置き換えます。
	Set(ctx context.Context, key string, value []byte) error
	// Clear はすべてのキーを削除します（ファクトリーリセット）。
	Clear(ctx context.Context) error
	Close() error
}

// MemoryStore はプロセス内だけで完結する Store 実装です。
// Config.Ephemeral が有効な場合やテストで使います。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore は空の MemoryStore を生成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	s.data[key] = v
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	clear(s.data)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
