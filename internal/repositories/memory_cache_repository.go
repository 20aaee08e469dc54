package repositories

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type memoryCacheItem struct {
	value     string
	expiresAt time.Time
}

// MemoryCacheRepository: кеш в памяти процесса для STORAGE_DRIVER=memory и тестов.
type MemoryCacheRepository struct {
	mu    sync.Mutex
	items map[string]memoryCacheItem
	now   func() time.Time
}

func NewMemoryCacheRepository() CacheRepositoryInterface {
	return &MemoryCacheRepository{items: make(map[string]memoryCacheItem), now: time.Now}
}

func (r *MemoryCacheRepository) getLocked(key string) (memoryCacheItem, bool) {
	item, ok := r.items[key]
	if !ok {
		return item, false
	}
	if !item.expiresAt.IsZero() && !r.now().Before(item.expiresAt) {
		delete(r.items, key)
		return item, false
	}
	return item, true
}

func (r *MemoryCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := memoryCacheItem{value: fmt.Sprint(value)}
	if b, ok := value.([]byte); ok {
		item.value = string(b)
	}
	if expiration > 0 {
		item.expiresAt = r.now().Add(expiration)
	}
	r.items[key] = item
	return nil
}

func (r *MemoryCacheRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.getLocked(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return item.value, nil
}

func (r *MemoryCacheRepository) Del(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.items, k)
	}
	return nil
}

func (r *MemoryCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, _ := r.getLocked(key)
	var n int64
	if item.value != "" {
		parsed, err := strconv.ParseInt(item.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("значение ключа %s не является числом", key)
		}
		n = parsed
	}
	n++
	item.value = strconv.FormatInt(n, 10)
	r.items[key] = item
	return n, nil
}
