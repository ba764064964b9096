package cart

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/internal/providers/local"
	"github.com/soft99/storefront-backend/internal/snapshot"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
)

// brokenStore fails every call.
type brokenStore struct {
	loads int
	saves int
}

func (b *brokenStore) Load(context.Context, string) (*Cart, bool, error) {
	b.loads++
	return nil, false, errors.New("store down")
}

func (b *brokenStore) Save(context.Context, string, *Cart) error {
	b.saves++
	return errors.New("store down")
}

func (b *brokenStore) Delete(context.Context, string) error { return errors.New("store down") }

func newRegistry(t *testing.T) *providers.Registry {
	t.Helper()
	p, err := local.New(local.Options{Store: snapshot.NewMemory(), Logger: logger.Nop()})
	require.NoError(t, err)
	return providers.NewRegistry(p)
}

func newTestService(t *testing.T, store Store, logg *logger.Logger, m *metrics.StorefrontMetrics) Service {
	t.Helper()
	if logg == nil {
		logg = logger.Nop()
	}
	svc, err := NewService(store, newRegistry(t), logg, m)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, newRegistry(t), logger.Nop(), nil)
	require.Error(t, err)
	_, err = NewService(NewMemoryStore(), nil, logger.Nop(), nil)
	require.Error(t, err)
	_, err = NewService(NewMemoryStore(), newRegistry(t), nil, nil)
	require.Error(t, err)
}

func TestServiceAddProductPersists(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := newTestService(t, store, nil, nil)

	view, err := svc.AddProduct(ctx, "s1", "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalItems)
	assert.Equal(t, 130.0, view.TotalPrice)

	view, err = svc.AddProduct(ctx, "s1", "p2", 1)
	require.NoError(t, err)
	assert.Equal(t, 178.0, view.TotalPrice)

	stored, found, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, stored.Items, 2)

	// a fresh service instance picks up the stored cart
	reloaded := newTestService(t, store, nil, nil)
	view, err = reloaded.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalItems)
}

func TestServiceRejectsHiddenAndUnknownProducts(t *testing.T) {
	svc := newTestService(t, NewMemoryStore(), nil, nil)
	for _, id := range []string{"p17", "p18", "does-not-exist"} {
		_, err := svc.AddProduct(context.Background(), "s1", id, 1)
		require.Error(t, err, id)
		assert.True(t, pkgerrors.IsNotFound(err), id)
	}
}

func TestServiceValidatesInput(t *testing.T) {
	svc := newTestService(t, NewMemoryStore(), nil, nil)
	_, err := svc.Get(context.Background(), " ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	_, err = svc.AddProduct(context.Background(), "s1", "", 1)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	view, err := svc.AddProduct(context.Background(), "s1", "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestServiceMutations(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore(), nil, nil)

	_, err := svc.AddProduct(ctx, "s1", "p1", 1)
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, "s1", "p4", 1)
	require.NoError(t, err)

	view, err := svc.UpdateQuantity(ctx, "s1", "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 5, view.TotalItems)

	view, err = svc.Remove(ctx, "s1", "p4")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	snap, err := svc.Snapshot(ctx, "s1")
	require.NoError(t, err)
	snap.Items[0].Quantity = 100

	view, err = svc.Clear(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalPrice)
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore(), nil, nil)
	_, err := svc.AddProduct(ctx, "a", "p1", 1)
	require.NoError(t, err)
	view, err := svc.Get(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestServiceDegradesWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf, Format: "json"})
	reg := prometheus.NewRegistry()
	m := metrics.NewStorefrontMetrics(reg)
	store := &brokenStore{}
	svc := newTestService(t, store, logg, m)

	view, err := svc.AddProduct(ctx, "s1", "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalItems)

	view, err = svc.AddProduct(ctx, "s1", "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, view.TotalItems, "cart must survive in memory")

	assert.Equal(t, 2, store.loads, "every call reads the store")
	assert.Equal(t, 2, store.saves)
	assert.Contains(t, buf.String(), "cart.load_failed")
	assert.Contains(t, buf.String(), "cart.save_failed")
	assert.Contains(t, buf.String(), `"cart_session":"s1"`)

	// one series for load, one for save
	assert.Equal(t, 2, testutil.CollectAndCount(reg, "cart_persist_failures_total"))
}

// flakyStore delegates to a MemoryStore until down is set.
type flakyStore struct {
	*MemoryStore
	down bool
}

func (f *flakyStore) Load(ctx context.Context, id string) (*Cart, bool, error) {
	if f.down {
		return nil, false, errors.New("store down")
	}
	return f.MemoryStore.Load(ctx, id)
}

func (f *flakyStore) Save(ctx context.Context, id string, c *Cart) error {
	if f.down {
		return errors.New("store down")
	}
	return f.MemoryStore.Save(ctx, id, c)
}

func TestServiceReadsThroughSharedStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a := newTestService(t, store, nil, nil)
	b := newTestService(t, store, nil, nil)

	view, err := b.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = a.AddProduct(ctx, "s1", "p1", 1)
	require.NoError(t, err)

	view, err = b.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1, "b must see a's write")

	_, err = b.AddProduct(ctx, "s1", "p4", 1)
	require.NoError(t, err)

	stored, found, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, stored.Items, 2, "b must not overwrite a's line")
}

func TestServiceDoesNotRetainSessions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, NewMemoryStore(), nil, nil)
	for i := 0; i < 1000; i++ {
		_, err := svc.Get(ctx, gofakeit.UUID())
		require.NoError(t, err)
	}
	impl := svc.(*service)
	impl.mu.Lock()
	defer impl.mu.Unlock()
	assert.Empty(t, impl.locks)
	assert.Empty(t, impl.fallback)
}

func TestServiceFallbackClearsAfterRecovery(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{MemoryStore: NewMemoryStore(), down: true}
	svc := newTestService(t, store, nil, nil)

	_, err := svc.AddProduct(ctx, "s1", "p1", 1)
	require.NoError(t, err)

	store.down = false
	view, err := svc.AddProduct(ctx, "s1", "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalItems, "the outage cart is carried into the store")

	stored, found, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, stored.TotalItems())
	assert.Empty(t, svc.(*service).fallback)
}
