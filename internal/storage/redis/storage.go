package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pjessen/partywords/internal/model"
	"github.com/pjessen/partywords/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Host account operations

func (s *Storage) SaveHost(ctx context.Context, host *model.HostAccount) error {
	data, err := json.Marshal(host)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, hostKey(host.UserID), data, 0)
	pipe.Set(ctx, usernameIndexKey(host.Username), string(host.UserID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetHost(ctx context.Context, id model.UserID) (*model.HostAccount, error) {
	data, err := s.client.Get(ctx, hostKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrHostNotFound
		}
		return nil, err
	}

	var host model.HostAccount
	if err := json.Unmarshal(data, &host); err != nil {
		return nil, err
	}
	return &host, nil
}

func (s *Storage) GetHostByUsername(ctx context.Context, username string) (*model.HostAccount, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrHostNotFound
		}
		return nil, err
	}
	return s.GetHost(ctx, model.UserID(id))
}

// Word pack operations

func (s *Storage) SaveWordPack(ctx context.Context, pack *model.WordPack) error {
	data, err := json.Marshal(pack)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, wordPackKey(pack.Name), data, 0)
	pipe.SAdd(ctx, wordPackIndexKey(), pack.Name)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetWordPack(ctx context.Context, name string) (*model.WordPack, error) {
	data, err := s.client.Get(ctx, wordPackKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrWordPackNotFound
		}
		return nil, err
	}

	var pack model.WordPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, err
	}
	return &pack, nil
}

func (s *Storage) ListWordPacks(ctx context.Context) ([]*model.WordPack, error) {
	names, err := s.client.SMembers(ctx, wordPackIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	packs := make([]*model.WordPack, 0, len(names))
	for _, name := range names {
		pack, err := s.GetWordPack(ctx, name)
		if err != nil {
			if errors.Is(err, model.ErrWordPackNotFound) {
				// Index entry outlived the pack; skip it
				continue
			}
			return nil, err
		}
		packs = append(packs, pack)
	}
	return packs, nil
}

func (s *Storage) DeleteWordPack(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, wordPackKey(name))
	pipe.SRem(ctx, wordPackIndexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}
