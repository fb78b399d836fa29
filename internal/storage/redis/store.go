// Package redis implements storage.SnapshotStore on Redis, for servers that
// share saved games between hosts.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-ladders/internal/storage"
)

const defaultPrefix = "ladders:save:"

// Store implements storage.SnapshotStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ storage.SnapshotStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the expiration for saves. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for saves.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store connected to address.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: defaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Saves live under their own namespace so no save name can collide with
// the index key.
func (s *Store) key(name string) string {
	return s.prefix + "saves:" + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("storage: redis ping: %w", err)
	}
	return nil
}

// SaveGame persists the save and indexes it by update time.
func (s *Store) SaveGame(ctx context.Context, g storage.SavedGame) error {
	if strings.TrimSpace(g.Name) == "" {
		return storage.ErrEmptySaveName
	}

	now := time.Now().UTC()
	g.UpdatedAt = now
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("storage: cannot encode save: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(g.Name), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(now.UnixNano()),
		Member: g.Name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storage: cannot save to redis: %w", err)
	}
	return nil
}

// LoadGame retrieves a saved game by name.
func (s *Store) LoadGame(ctx context.Context, name string) (storage.SavedGame, error) {
	val, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, backend.Nil) {
		return storage.SavedGame{}, fmt.Errorf("%w: %q", storage.ErrSaveNotFound, name)
	}
	if err != nil {
		return storage.SavedGame{}, fmt.Errorf("storage: cannot get from redis: %w", err)
	}

	var saved storage.SavedGame
	if err := json.Unmarshal(val, &saved); err != nil {
		return storage.SavedGame{}, fmt.Errorf("storage: cannot decode save: %w", err)
	}
	return saved, nil
}

// ListSaves returns every live save, most recently updated first.
// Index entries whose key has expired are removed as they are found.
func (s *Store) ListSaves(ctx context.Context) ([]storage.SaveInfo, error) {
	names, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}

	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = s.key(n)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot fetch saves: %w", err)
	}

	var (
		saves   []storage.SaveInfo
		expired []any
	)
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			expired = append(expired, names[i])
			continue
		}
		var saved storage.SavedGame
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			return nil, fmt.Errorf("storage: cannot decode save %q: %w", names[i], err)
		}
		saves = append(saves, saved.Info())
	}

	if len(expired) > 0 {
		if err := s.client.ZRem(ctx, s.indexKey(), expired...).Err(); err != nil {
			return nil, fmt.Errorf("storage: cannot prune expired saves: %w", err)
		}
	}

	return saves, nil
}

// DeleteSave removes a saved game.
func (s *Store) DeleteSave(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storage: cannot delete from redis: %w", err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("%w: %q", storage.ErrSaveNotFound, name)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
