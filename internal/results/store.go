// Package results fetches and holds the result bundle shown on the result
// screen.
package results

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

var (
	ErrNoReference = errors.New("no result reference")
	ErrStoreClosed = errors.New("result store closed")
)

// Store owns the RetrievalStatus of the result screen. Each Load starts a
// new generation; a fetch that completes after a newer Load is discarded,
// so only the most recently requested reference can become Ready.
type Store struct {
	fetcher Fetcher
	cache   *BundleCache

	mu      sync.Mutex
	gen     uint64
	status  RetrievalStatus
	ref     models.ResultReference
	pending chan RetrievalStatus
	closed  bool
}

// NewStore builds a store reading through fetcher. cache may be shared
// between stores; nil means every Load goes to the network.
func NewStore(fetcher Fetcher, cache *BundleCache) *Store {
	if cache == nil {
		cache, _ = NewBundleCache(0)
	}
	return &Store{
		fetcher: fetcher,
		cache:   cache,
		status:  Loading(""),
	}
}

// Load starts retrieval of ref. The returned channel yields Loading, then
// exactly one terminal status, then closes. If a later Load supersedes this
// one first, the channel closes without a terminal status.
func (s *Store) Load(ctx context.Context, ref models.ResultReference) <-chan RetrievalStatus {
	ch := make(chan RetrievalStatus, 2)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		ch <- Failed(ref, ErrStoreClosed)
		close(ch)
		return ch
	}

	s.gen++
	gen := s.gen
	s.supersedeLocked()
	s.ref = ref
	s.publishLocked(ch, Loading(ref))

	if ref.IsZero() {
		slog.Debug("[ResultStore] No reference supplied")
		s.settleLocked(ch, Failed(ref, ErrNoReference))
		return ch
	}

	if bundle, ok := s.cache.Get(ref); ok {
		slog.Debug("[ResultStore] Serving cached bundle", slog.String("id", ref.String()))
		s.settleLocked(ch, Ready(ref, bundle))
		return ch
	}

	s.pending = ch
	go s.fetch(ctx, gen, ref, ch)
	return ch
}

func (s *Store) fetch(ctx context.Context, gen uint64, ref models.ResultReference, ch chan RetrievalStatus) {
	start := time.Now()
	bundle, err := s.cache.Fetch(ctx, s.fetcher, ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		slog.Debug("[ResultStore] Discarding superseded result",
			slog.String("id", ref.String()),
			slog.Duration("elapsed", time.Since(start)))
		return
	}
	s.pending = nil

	if err != nil {
		slog.Warn("[ResultStore] Retrieval failed",
			slog.String("id", ref.String()),
			slog.String("error", err.Error()))
		s.settleLocked(ch, Failed(ref, err))
		return
	}
	s.settleLocked(ch, Ready(ref, bundle))
}

// Status returns the latest status without blocking.
func (s *Store) Status() RetrievalStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Reference returns the most recently requested reference.
func (s *Store) Reference() models.ResultReference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ref
}

// Close discards any in-flight fetch. Later Loads fail with ErrStoreClosed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	s.supersedeLocked()
}

func (s *Store) supersedeLocked() {
	if s.pending != nil {
		close(s.pending)
		s.pending = nil
	}
}

func (s *Store) publishLocked(ch chan RetrievalStatus, st RetrievalStatus) {
	s.status = st
	ch <- st
}

func (s *Store) settleLocked(ch chan RetrievalStatus, st RetrievalStatus) {
	s.publishLocked(ch, st)
	close(ch)
}

// Await drains ch until a terminal status arrives. ok is false when the
// channel closed without one or ctx ended first.
func Await(ctx context.Context, ch <-chan RetrievalStatus) (last RetrievalStatus, ok bool) {
	for {
		select {
		case <-ctx.Done():
			return last, false
		case st, open := <-ch:
			if !open {
				return last, false
			}
			last = st
			if st.Terminal() {
				return last, true
			}
		}
	}
}
