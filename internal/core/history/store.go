package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/qrpop/internal/core/kv"
)

// ErrCorrupt marks a stored value that could not be decoded.
var ErrCorrupt = errors.New("stored history is unreadable")

// ErrReset is returned by Record when an unreadable stored value was
// replaced by the new list. The write itself succeeded.
var ErrReset = errors.New("stored history was unreadable and has been reset")

// Store maintains the bounded history on top of a kv.Store.
type Store struct {
	mu    sync.Mutex
	kv    kv.Store
	limit int
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLimit overrides the number of entries kept. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// NewStore creates a history store persisting through backend.
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:    backend,
		limit: Limit,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted list. A key that was never written yields an
// empty list and no error.
func (s *Store) Load(ctx context.Context) (List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (List, error) {
	data, ok, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kv.ErrCorrupt) {
		return List{}, fmt.Errorf("loading history: %w: %w", ErrCorrupt, err)
	}
	if err != nil {
		return List{}, fmt.Errorf("loading history: %w", err)
	}
	if !ok || len(data) == 0 {
		return List{}, nil
	}
	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		return List{}, fmt.Errorf("decoding history: %w: %w", ErrCorrupt, err)
	}
	if list == nil {
		list = List{}
	}
	return list, nil
}

// Record prepends text to the history, truncates to the limit and
// overwrites the stored list. On a write failure the new list is still
// returned alongside the error so callers can keep rendering it.
//
// A read failure aborts without writing. A stored value that does not
// decode is replaced; Record then returns the new list with ErrReset.
func (s *Store) Record(ctx context.Context, text string) (List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	reset := false
	switch {
	case errors.Is(err, ErrCorrupt):
		list, reset = List{}, true
	case err != nil:
		return nil, err
	}

	entry := Entry{
		ID:        s.newID(),
		Text:      text,
		Timestamp: s.now().UTC(),
	}
	list = list.prepend(entry, s.limit)

	if err := s.save(ctx, list); err != nil {
		return list, err
	}
	if reset {
		return list, ErrReset
	}
	return list, nil
}

// Clear overwrites the stored list with an empty one.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, List{})
}

func (s *Store) save(ctx context.Context, list List) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
