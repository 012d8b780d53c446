package cart

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	pkgerrors "github.com/prasetyoadi/umkm-storefront/pkg/errors"
	"github.com/prasetyoadi/umkm-storefront/pkg/redis"
)

// Storage is the durable key-value slot behind a session's cart. The slot
// holds the raw JSON envelope; decoding and corruption handling live in the
// Store so every backend behaves the same.
type Storage interface {
	Load(ctx context.Context, sessionID string) (raw []byte, found bool, err error)
	Save(ctx context.Context, sessionID string, raw []byte) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisStorage keeps cart slots in Redis with a TTL.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, ttl time.Duration) (*RedisStorage, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "redis client required")
	}
	return &RedisStorage{client: client, ttl: ttl}, nil
}

func (r *RedisStorage) Load(ctx context.Context, sessionID string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.CartSlotKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *RedisStorage) Save(ctx context.Context, sessionID string, raw []byte) error {
	return r.client.Set(ctx, r.client.CartSlotKey(sessionID), string(raw), r.ttl)
}

func (r *RedisStorage) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.client.CartSlotKey(sessionID))
}

// FileStorage keeps one JSON file per session under a directory. It backs
// dev setups and tests where Redis is not available.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart file directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart directory")
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Load(_ context.Context, sessionID string) ([]byte, bool, error) {
	raw, err := os.ReadFile(f.slotPath(sessionID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (f *FileStorage) Save(_ context.Context, sessionID string, raw []byte) error {
	path := f.slotPath(sessionID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (f *FileStorage) Delete(_ context.Context, sessionID string) error {
	err := os.Remove(f.slotPath(sessionID))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *FileStorage) slotPath(sessionID string) string {
	return filepath.Join(f.dir, sessionID+".json")
}
