package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "shopfront:snapshot:"
	redisChangeTopic = "shopfront:snapshot:changed"
)

// RedisStore keeps one JSON-encoded envelope per snapshot key and publishes
// writes on a pub/sub channel so other instances can reconcile.
type RedisStore struct {
	rdb    *redis.Client
	origin string
}

// changeMessage is the pub/sub payload for a snapshot write.
type changeMessage struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

// NewRedisStore connects to the given address and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStore{rdb: rdb, origin: uuid.NewString()}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Envelope, error) {
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot %q: %w", key, err)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode snapshot envelope %q: %w", key, err)
	}
	return &env, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, data []byte) error {
	var rev int64 = 1
	if prev, err := s.Get(ctx, key); err == nil {
		rev = prev.Rev + 1
	}
	env := Envelope{Rev: rev, Origin: s.origin, UpdatedAt: time.Now().UTC(), Data: data}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode snapshot envelope %q: %w", key, err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("put snapshot %q: %w", key, err)
	}

	msg, _ := json.Marshal(changeMessage{Key: key, Origin: s.origin})
	if err := s.rdb.Publish(ctx, redisChangeTopic, msg).Err(); err != nil {
		return fmt.Errorf("publish snapshot change %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Watch(ctx context.Context) (<-chan Event, error) {
	sub := s.rdb.Subscribe(ctx, redisChangeTopic)
	// Force the subscription to be established before returning.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", redisChangeTopic, err)
	}

	ch := make(chan Event, 64)
	go func() {
		defer close(ch)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				var cm changeMessage
				if err := json.Unmarshal([]byte(m.Payload), &cm); err != nil {
					log.Printf("snapshot watch: bad payload: %v", err)
					continue
				}
				select {
				case ch <- Event{Key: cm.Key, Origin: cm.Origin}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func (s *RedisStore) Origin() string { return s.origin }

func (s *RedisStore) Close() error { return s.rdb.Close() }
