// pkg/memcache/drafts.go
package mem

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrMiss = errors.New("cache: key not found or expired")

// DraftCache holds short-lived values such as booking drafts staged across a
// payment redirect and ride options between search and checkout.
type DraftCache interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get reads without consuming. Returns ErrMiss if missing/expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Take returns the value and removes it (single-use), whether or not the
	// caller ends up accepting it.
	Take(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

type MemoryDrafts struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewMemoryDrafts() *MemoryDrafts {
	return &MemoryDrafts{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemoryDrafts) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.data[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryDrafts) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil, ErrMiss
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, key) // cleanup expired
		return nil, ErrMiss
	}
	return append([]byte(nil), e.value...), nil
}

func (s *MemoryDrafts) Take(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil, ErrMiss
	}
	delete(s.data, key) // single-use
	if s.now().After(e.expiresAt) {
		return nil, ErrMiss
	}
	return e.value, nil
}

func (s *MemoryDrafts) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// sweep drops expired entries. Caller holds mu.
func (s *MemoryDrafts) sweep() {
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
