package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName 闪存消息cookie
const CookieName = "ledger_flash"

// DefaultTTL 消息有效期
const DefaultTTL = 5 * time.Minute

// 消息类型
const (
	KindSuccess = "success"
	KindError   = "error"
)

// Message 一次性表单结果消息
type Message struct {
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	InvoiceID string `json:"invoice_id,omitempty"`
}

// Store keeps a message until it is read once.
type Store interface {
	Put(ctx context.Context, msg Message) (string, error)
	Pop(ctx context.Context, id string) (*Message, error)
}

// RedisStore Redis实现
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(id string) string {
	return "flash:" + id
}

// Put 保存消息
func (s *RedisStore) Put(ctx context.Context, msg Message) (string, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	id := uuid.New().String()
	if err := s.rdb.Set(ctx, redisKey(id), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("save flash: %w", err)
	}
	return id, nil
}

// Pop 读取并删除消息, 不存在时返回 nil
func (s *RedisStore) Pop(ctx context.Context, id string) (*Message, error) {
	data, err := s.rdb.GetDel(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read flash: %w", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode flash: %w", err)
	}
	return &msg, nil
}

type memoryEntry struct {
	msg     Message
	expires time.Time
}

// MemoryStore 进程内实现, 未配置Redis时使用
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

// Put 保存消息, 顺带清理过期项
func (s *MemoryStore) Put(ctx context.Context, msg Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, id)
		}
	}
	id := uuid.New().String()
	s.entries[id] = memoryEntry{msg: msg, expires: now.Add(s.ttl)}
	return id, nil
}

// Pop 读取并删除消息
func (s *MemoryStore) Pop(ctx context.Context, id string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	delete(s.entries, id)
	if s.now().After(e.expires) {
		return nil, nil
	}
	msg := e.msg
	return &msg, nil
}
