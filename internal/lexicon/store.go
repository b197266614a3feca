package lexicon

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// LoadObserver is notified after every load attempt made by a [Store].
type LoadObserver func(ctx context.Context, code string, elapsed time.Duration, err error)

// Store caches one [Lexicon] per language code. Concurrent Get calls for a
// code that is not cached yet share a single load. Failed loads are not
// cached. Store is safe for concurrent use.
type Store struct {
	src      Source
	opts     []LoadOption
	observer LoadObserver

	mu      sync.RWMutex
	cache   map[string]*Lexicon
	group   singleflight.Group
	version map[string]uint64
}

// StoreOption configures a [Store].
type StoreOption func(*Store)

// WithLoadOptions passes opts to every [Load] made by the store.
func WithLoadOptions(opts ...LoadOption) StoreOption {
	return func(s *Store) { s.opts = append(s.opts, opts...) }
}

// WithLoadObserver registers fn to be called after each load attempt.
func WithLoadObserver(fn LoadObserver) StoreOption {
	return func(s *Store) { s.observer = fn }
}

// NewStore returns an empty store reading from src.
func NewStore(src Source, opts ...StoreOption) *Store {
	s := &Store{
		src:     src,
		cache:   make(map[string]*Lexicon),
		version: make(map[string]uint64),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get returns the lexicon for code, loading it on first use. A caller whose
// ctx is done stops waiting with ctx.Err(); the load itself keeps running
// for the other callers and still fills the cache.
func (s *Store) Get(ctx context.Context, code string) (*Lexicon, error) {
	s.mu.RLock()
	lex, ok := s.cache[code]
	s.mu.RUnlock()
	if ok {
		return lex, nil
	}

	// The shared load must outlive any single caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(code, func() (any, error) {
		s.mu.RLock()
		lex, ok := s.cache[code]
		gen := s.version[code]
		s.mu.RUnlock()
		if ok {
			return lex, nil
		}

		start := time.Now()
		lex, err := Load(loadCtx, code, s.src, s.opts...)
		if s.observer != nil {
			s.observer(loadCtx, code, time.Since(start), err)
		}
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		// an Invalidate during the load makes this result stale
		if s.version[code] == gen {
			s.cache[code] = lex
		}
		s.mu.Unlock()
		return lex, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Lexicon), nil
	}
}

// Invalidate drops the cached lexicon for code; the next Get reloads it.
func (s *Store) Invalidate(code string) {
	s.mu.Lock()
	delete(s.cache, code)
	s.version[code]++
	s.mu.Unlock()
	s.group.Forget(code)
}

// Preload loads every code and returns the joined load errors.
func (s *Store) Preload(ctx context.Context, codes ...string) error {
	var errs []error
	for _, code := range codes {
		if _, err := s.Get(ctx, code); err != nil {
			errs = append(errs, fmt.Errorf("preload %s: %w", code, err))
		}
	}
	return errors.Join(errs...)
}

// Cached reports the codes currently held in the cache, sorted.
func (s *Store) Cached() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.cache))
	for code := range s.cache {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}
