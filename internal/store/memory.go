package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used in development and tests. Writes
// fan out to every watcher, including watchers attached to other
// MemoryStore handles sharing the same underlying map via Attach.
type MemoryStore struct {
	mu       sync.Mutex
	data     map[string]*Envelope
	watchers []chan Event
	origin   string

	// shared, when non-nil, points at the handle owning data and watchers.
	shared *MemoryStore
}

// NewMemoryStore creates an empty in-memory store with a fresh origin.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:   make(map[string]*Envelope),
		origin: uuid.NewString(),
	}
}

// Attach returns a second handle over the same underlying data with its own
// origin, simulating another process instance sharing the durable store.
func (s *MemoryStore) Attach() *MemoryStore {
	return &MemoryStore{origin: uuid.NewString(), shared: s}
}

func (s *MemoryStore) root() *MemoryStore {
	if s.shared != nil {
		return s.shared
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*Envelope, error) {
	r := s.root()
	r.mu.Lock()
	defer r.mu.Unlock()
	env, ok := r.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *env
	return &cp, nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, data []byte) error {
	r := s.root()
	r.mu.Lock()
	var rev int64 = 1
	if prev, ok := r.data[key]; ok {
		rev = prev.Rev + 1
	}
	r.data[key] = &Envelope{Rev: rev, Origin: s.origin, UpdatedAt: time.Now().UTC(), Data: data}
	watchers := make([]chan Event, len(r.watchers))
	copy(watchers, r.watchers)
	r.mu.Unlock()

	ev := Event{Key: key, Origin: s.origin}
	for _, ch := range watchers {
		select {
		case ch <- ev:
		default: // slow watcher; drop rather than block the writer
		}
	}
	return nil
}

func (s *MemoryStore) Watch(ctx context.Context) (<-chan Event, error) {
	r := s.root()
	ch := make(chan Event, 64)
	r.mu.Lock()
	r.watchers = append(r.watchers, ch)
	r.mu.Unlock()

	out := make(chan Event, 64)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				r.removeWatcher(ch)
				return
			case ev := <-ch:
				select {
				case out <- ev:
				case <-ctx.Done():
					r.removeWatcher(ch)
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *MemoryStore) removeWatcher(ch chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.watchers {
		if w == ch {
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			return
		}
	}
}

func (s *MemoryStore) Origin() string { return s.origin }

func (s *MemoryStore) Close() error { return nil }
