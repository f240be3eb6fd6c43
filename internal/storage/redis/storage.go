package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/storage"
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

// Session snapshot operations

func (s *Storage) SaveSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, snapshotKey(), data, s.cfg.SnapshotTTL).Err()
}

func (s *Storage) GetSnapshot(ctx context.Context) (*model.Snapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSnapshotNotFound
		}
		return nil, err
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedSnapshot, err)
	}
	return &snapshot, nil
}

func (s *Storage) DeleteSnapshot(ctx context.Context) error {
	return s.client.Del(ctx, snapshotKey()).Err()
}

// Quiz bank operations

func (s *Storage) SaveQuizzes(ctx context.Context, quizzes []model.Quiz) error {
	key := quizzesKey()

	members := make([]interface{}, 0, len(quizzes))
	for _, q := range quizzes {
		data, err := json.Marshal(q)
		if err != nil {
			return err
		}
		members = append(members, data)
	}

	// Replace the existing bank atomically; order is preserved by the list
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(members) > 0 {
		pipe.RPush(ctx, key, members...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetQuizzes(ctx context.Context) ([]model.Quiz, error) {
	values, err := s.client.LRange(ctx, quizzesKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, model.ErrQuizBankNotLoaded
	}

	quizzes := make([]model.Quiz, 0, len(values))
	for _, val := range values {
		var q model.Quiz
		if err := json.Unmarshal([]byte(val), &q); err != nil {
			continue // Skip invalid data
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}
