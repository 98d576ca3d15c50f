package results

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/srinijamadireddy19/Blog-Digest/internal/models"
)

type Fetcher interface {
	FetchResult(ctx context.Context, ref models.ResultReference) (*models.ResultBundle, error)
}

// BundleCache keeps bundles fetched during this process and collapses
// concurrent fetches of the same reference into one request. It is safe for
// use by several stores at once. Nothing is persisted.
type BundleCache struct {
	bundles *lru.Cache[models.ResultReference, *models.ResultBundle]
	group   singleflight.Group
}

// NewBundleCache returns a cache holding up to size bundles. A size of zero
// or less disables caching but keeps request collapsing.
func NewBundleCache(size int) (*BundleCache, error) {
	c := &BundleCache{}
	if size <= 0 {
		return c, nil
	}
	bundles, err := lru.New[models.ResultReference, *models.ResultBundle](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create bundle cache: %w", err)
	}
	c.bundles = bundles
	return c, nil
}

func (c *BundleCache) Get(ref models.ResultReference) (*models.ResultBundle, bool) {
	if c == nil || c.bundles == nil {
		return nil, false
	}
	return c.bundles.Get(ref)
}

func (c *BundleCache) Len() int {
	if c == nil || c.bundles == nil {
		return 0
	}
	return c.bundles.Len()
}

// Fetch returns the cached bundle for ref or reads it once through fetcher.
// Failures are not cached.
func (c *BundleCache) Fetch(ctx context.Context, fetcher Fetcher, ref models.ResultReference) (*models.ResultBundle, error) {
	if b, ok := c.Get(ref); ok {
		return b, nil
	}

	v, err, shared := c.group.Do(ref.String(), func() (any, error) {
		bundle, err := fetcher.FetchResult(ctx, ref)
		if err != nil {
			return nil, err
		}
		if c.bundles != nil {
			c.bundles.Add(ref, bundle)
		}
		return bundle, nil
	})
	if shared {
		slog.Debug("[ResultStore] Shared in-flight fetch", slog.String("id", ref.String()))
	}
	if err != nil {
		return nil, err
	}
	return v.(*models.ResultBundle), nil
}
