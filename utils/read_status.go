package utils

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/go-redis/redis/v8"
)

const (
	// Redis only has string type, there is no boolean or int, so we use "1" to represent true
	REDIS_TRUE = "1"
)

var ctx = context.Background()

// ReadStatusStore tracks which feed posts a user has already seen. Keys are
// per (user, post) pair; a missing key means unread.
type ReadStatusStore interface {
	GetPostsReadStatus(postIds []string, userId string) ([]bool, error)
	MarkPostsAsRead(postIds []string, userId string) error
}

type RedisClient struct {
	inner *redis.Client
}

func GetRedisClient() *RedisClient {
	return &RedisClient{
		inner: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
			Password: os.Getenv("REDIS_PASSWD"),
			DB:       0, // use default DB
		})}
}

func PostKey(userId string, postId string) string {
	return fmt.Sprintf("%s_%s", userId, postId)
}

func (r *RedisClient) GetPostsReadStatus(postIds []string, userId string) ([]bool, error) {
	postKeys := []string{}

	for _, pid := range postIds {
		postKeys = append(postKeys, PostKey(userId, pid))
	}

	res, err := r.inner.MGet(ctx, postKeys...).Result()
	if err != nil {
		return nil, err
	}
	status := []bool{}
	for _, v := range res {
		status = append(status, v == REDIS_TRUE)
	}
	return status, nil
}

func (r *RedisClient) MarkPostsAsRead(postIds []string, userId string) error {
	keyValues := []interface{}{}
	for _, pid := range postIds {
		keyValues = append(keyValues, PostKey(userId, pid))
		keyValues = append(keyValues, REDIS_TRUE)
	}
	// MSet, not MSetNX: marking read is monotonic, and a batch overlapping
	// already-read posts must still set the remaining keys. MSETNX refuses
	// the whole batch when any one key exists.
	return r.inner.MSet(ctx, keyValues...).Err()
}

// InMemoryReadStatusStore is a map backed ReadStatusStore for tests.
type InMemoryReadStatusStore struct {
	mu   sync.Mutex
	read map[string]bool
}

func NewInMemoryReadStatusStore() *InMemoryReadStatusStore {
	return &InMemoryReadStatusStore{read: make(map[string]bool)}
}

func (s *InMemoryReadStatusStore) GetPostsReadStatus(postIds []string, userId string) ([]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := []bool{}
	for _, pid := range postIds {
		status = append(status, s.read[PostKey(userId, pid)])
	}
	return status, nil
}

func (s *InMemoryReadStatusStore) MarkPostsAsRead(postIds []string, userId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pid := range postIds {
		s.read[PostKey(userId, pid)] = true
	}
	return nil
}
