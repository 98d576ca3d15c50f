// Package db persists processed result bundles for the development service.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/srinijamadireddy19/Blog-Digest/internal/clients"
	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

var ErrNotFound = errors.New("result not found")

type ResultRepository interface {
	Save(ctx context.Context, id string, bundle *models.ResultBundle) error
	Load(ctx context.Context, id string) (*models.ResultBundle, error)
}

type memoryEntry struct {
	bundle  *models.ResultBundle
	expires time.Time
}

// MemoryRepository keeps bundles in process until their TTL passes.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *MemoryRepository) Save(ctx context.Context, id string, bundle *models.ResultBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for k, e := range r.entries {
		if now.After(e.expires) {
			delete(r.entries, k)
		}
	}
	r.entries[id] = memoryEntry{bundle: bundle, expires: now.Add(r.ttl)}
	return nil
}

func (r *MemoryRepository) Load(ctx context.Context, id string) (*models.ResultBundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok || r.now().After(e.expires) {
		return nil, ErrNotFound
	}
	return e.bundle, nil
}

// ResultCache is the byte store behind ValkeyRepository.
type ResultCache interface {
	SaveResult(ctx context.Context, id string, data []byte, ttl time.Duration) error
	LoadResult(ctx context.Context, id string) ([]byte, error)
}

// ValkeyRepository stores each bundle as its GET /result envelope.
type ValkeyRepository struct {
	cache ResultCache
	ttl   time.Duration
}

func NewValkeyRepository(cache ResultCache, ttl time.Duration) *ValkeyRepository {
	return &ValkeyRepository{cache: cache, ttl: ttl}
}

func (r *ValkeyRepository) Save(ctx context.Context, id string, bundle *models.ResultBundle) error {
	data, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to encode result %s: %w", id, err)
	}
	return r.cache.SaveResult(ctx, id, data, r.ttl)
}

func (r *ValkeyRepository) Load(ctx context.Context, id string) (*models.ResultBundle, error) {
	data, err := r.cache.LoadResult(ctx, id)
	if errors.Is(err, clients.ErrResultNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	res, err := models.DecodeResult(data)
	if err != nil {
		slog.Error("[ResultRepository] Stored result is unreadable",
			slog.String("id", id),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to decode result %s: %w", id, err)
	}
	return res.Bundle, nil
}
