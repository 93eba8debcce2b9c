package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/siddontang/ledisdb/ledis"
	"github.com/tidwall/buntdb"
)

// MemoryBucket is a process-local slot.
type MemoryBucket struct {
	mu   sync.Mutex
	data string
	Fail error
}

func (m *MemoryBucket) Restore() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, nil
}

func (m *MemoryBucket) Save(data string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.data = data
	return nil
}

// MemoryStore keeps process-local slots by key. Slots are created on
// the first save, so reading an unknown key costs nothing.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: map[string]string{}}
}

// Bucket for the slot stored under key.
func (s *MemoryStore) Bucket(key string) Bucket {
	return memorySlot{store: s, key: key}
}

// Len is the number of slots written so far.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.slots)
}

type memorySlot struct {
	store *MemoryStore
	key   string
}

func (m memorySlot) Restore() (string, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return m.store.slots[m.key], nil
}

func (m memorySlot) Save(data string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.slots[m.key] = data
	return nil
}

// BuntBucket stores the slot in a buntdb file.
type BuntBucket struct {
	DB  *buntdb.DB
	Key string
}

func (b BuntBucket) Restore() (data string, err error) {
	err = b.DB.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(b.Key)
		if err == buntdb.ErrNotFound {
			return nil
		}
		data = val
		return err
	})
	return
}

func (b BuntBucket) Save(data string) error {
	return b.DB.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(b.Key, data, nil)
		return err
	})
}

// LedisBucket stores the slot in an embedded ledis database.
type LedisBucket struct {
	DB  *ledis.DB
	Key string
}

func (b LedisBucket) Restore() (string, error) {
	val, err := b.DB.Get([]byte(b.Key))
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func (b LedisBucket) Save(data string) error {
	return b.DB.Set([]byte(b.Key), []byte(data))
}

// RedisBucket stores the slot in a redis string key.
type RedisBucket struct {
	Client  *redis.Client
	Key     string
	Timeout time.Duration
}

func (b RedisBucket) context() (context.Context, context.CancelFunc) {
	timeout := b.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (b RedisBucket) Restore() (string, error) {
	ctx, cancel := b.context()
	defer cancel()

	val, err := b.Client.Get(ctx, b.Key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

func (b RedisBucket) Save(data string) error {
	ctx, cancel := b.context()
	defer cancel()
	return b.Client.Set(ctx, b.Key, data, 0).Err()
}
