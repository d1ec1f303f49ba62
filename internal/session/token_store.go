package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore is the durable home of the session token: a single key
// that survives restarts. Load returns the empty string (not an
// error) when no token is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a plain file, the server-side
// analogue of durable browser storage. The file holds exactly the
// token string and nothing else.
type FileTokenStore struct{ Path string }

func NewFileTokenStore(path string) *FileTokenStore { return &FileTokenStore{Path: path} }

func (f *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (f *FileTokenStore) Save(token string) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.Path, []byte(token), 0o600)
}

func (f *FileTokenStore) Clear() error {
	err := os.Remove(f.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// RedisTokenStore keeps the token under a single Redis key so that
// several portal replicas can share one session. No TTL is set; the
// token is removed explicitly on logout or restore failure.
type RedisTokenStore struct {
	rdb *redis.Client
	key string
}

func NewRedisTokenStore(rdb *redis.Client, key string) *RedisTokenStore {
	if key == "" {
		key = "session:token"
	}
	return &RedisTokenStore{rdb: rdb, key: key}
}

func (r *RedisTokenStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}

func (r *RedisTokenStore) Load() (string, error) {
	ctx, cancel := r.ctx()
	defer cancel()
	v, err := r.rdb.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

func (r *RedisTokenStore) Save(token string) error {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.rdb.Set(ctx, r.key, token, 0).Err()
}

func (r *RedisTokenStore) Clear() error {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.rdb.Del(ctx, r.key).Err()
}
