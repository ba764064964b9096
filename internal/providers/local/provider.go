// Package local serves the catalog from the bundled seed overlaid with
// persisted snapshots.
package local

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/soft99/storefront-backend/internal/images"
	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/internal/seed"
	"github.com/soft99/storefront-backend/internal/snapshot"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
	"github.com/soft99/storefront-backend/pkg/models"
)

const Name = "local"

// errUnchanged lets a mutation end without persisting anything.
var errUnchanged = errors.New("collection unchanged")

type Options struct {
	Store    snapshot.Store
	SeedDir  string
	Releaser images.Releaser
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
	Clock    providers.Clock
}

// collection is the cached state of one entity kind.
type collection[T any] struct {
	kind   snapshot.Kind
	items  []T
	loaded bool
	seed   func(*seed.Dataset) []T
	clone  func(T) T
}

func (c *collection[T]) reset() {
	c.items = nil
	c.loaded = false
}

func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = c.clone(item)
	}
	return out
}

type Provider struct {
	mu       sync.RWMutex
	store    snapshot.Store
	seedDir  string
	releaser images.Releaser
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	now      providers.Clock

	dataset    *seed.Dataset
	products   collection[models.Product]
	categories collection[models.Category]
	brands     collection[models.Brand]
	orders     collection[models.Order]
}

func New(opts Options) (*Provider, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.Releaser == nil {
		opts.Releaser = images.Noop{}
	}
	if opts.Clock == nil {
		opts.Clock = providers.SystemClock
	}
	return &Provider{
		store:    opts.Store,
		seedDir:  opts.SeedDir,
		releaser: opts.Releaser,
		logg:     opts.Logger,
		metrics:  opts.Metrics,
		now:      opts.Clock,
		products: collection[models.Product]{
			kind:  snapshot.KindProducts,
			seed:  func(ds *seed.Dataset) []models.Product { return ds.Products },
			clone: models.Product.Clone,
		},
		categories: collection[models.Category]{
			kind:  snapshot.KindCategories,
			seed:  func(ds *seed.Dataset) []models.Category { return ds.Categories },
			clone: func(c models.Category) models.Category { return c },
		},
		brands: collection[models.Brand]{
			kind:  snapshot.KindBrands,
			seed:  func(ds *seed.Dataset) []models.Brand { return ds.Brands },
			clone: func(b models.Brand) models.Brand { return b },
		},
		orders: collection[models.Order]{
			kind:  snapshot.KindOrders,
			seed:  func(*seed.Dataset) []models.Order { return nil },
			clone: models.Order.Clone,
		},
	}, nil
}

var _ providers.Provider = (*Provider)(nil)

func (p *Provider) Name() string { return Name }

// Reload drops the cache and eagerly reloads products, categories and brands.
func (p *Provider) Reload(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	if err := ensureLoaded(ctx, p, &p.products); err != nil {
		return err
	}
	if err := ensureLoaded(ctx, p, &p.categories); err != nil {
		return err
	}
	return ensureLoaded(ctx, p, &p.brands)
}

// ClearCache forgets every collection; the next access reloads lazily.
func (p *Provider) ClearCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
}

func (p *Provider) resetLocked() {
	p.dataset = nil
	p.products.reset()
	p.categories.reset()
	p.brands.reset()
	p.orders.reset()
}

func (p *Provider) seedLocked() (*seed.Dataset, error) {
	if p.dataset != nil {
		return p.dataset, nil
	}
	ds, err := seed.Load(p.seedDir)
	if err != nil {
		return nil, err
	}
	p.dataset = ds
	return ds, nil
}

// ensureLoaded fills c from its snapshot, or from the seed when there is no
// usable snapshot. Callers hold p.mu for writing.
func ensureLoaded[T any](ctx context.Context, p *Provider, c *collection[T]) error {
	if c.loaded {
		return nil
	}
	items, found, err := snapshot.LoadJSON[T](ctx, p.store, c.kind)
	if err != nil {
		lctx := p.logg.WithFields(ctx, map[string]any{"kind": c.kind.String(), "store": p.store.Name()})
		p.logg.WarnErr(lctx, "snapshot read failed, using seed data", err)
		found = false
	}
	if !found {
		ds, err := p.seedLocked()
		if err != nil {
			return providers.BackendError("load seed "+c.kind.String(), err)
		}
		items = c.seed(ds)
	}
	c.items = items
	c.loaded = true
	return nil
}

// read returns a deep copy of the collection, loading it on first use.
func read[T any](ctx context.Context, p *Provider, c *collection[T]) ([]T, error) {
	p.mu.RLock()
	if c.loaded {
		out := c.snapshot()
		p.mu.RUnlock()
		return out, nil
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ensureLoaded(ctx, p, c); err != nil {
		return nil, err
	}
	return c.snapshot(), nil
}

// mutate lets build derive the next collection, persists it, and only then
// swaps the cache. build receives a copy it may modify freely.
func mutate[T any](ctx context.Context, p *Provider, c *collection[T], build func([]T) ([]T, error)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := ensureLoaded(ctx, p, c); err != nil {
		return err
	}
	next, err := build(c.snapshot())
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := snapshot.SaveJSON(ctx, p.store, c.kind, next); err != nil {
		return providers.BackendError("persist "+c.kind.String(), err)
	}
	c.items = next
	return nil
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}
