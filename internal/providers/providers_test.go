package providers

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soft99/storefront-backend/pkg/enums"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
	"github.com/soft99/storefront-backend/pkg/models"
)

type namedProvider struct {
	Provider
	name string
}

func (n namedProvider) Name() string { return n.name }

func newTestFactory(t *testing.T, buf *bytes.Buffer) *Factory {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf, Format: "json"})
	f, err := NewFactory(namedProvider{name: "local"}, logg, metrics.NewStorefrontMetrics(prometheus.NewRegistry()))
	require.NoError(t, err)
	return f
}

func TestFactoryResolve(t *testing.T) {
	buf := &bytes.Buffer{}
	f := newTestFactory(t, buf)
	f.Register(enums.ProviderSourceDocument, func(context.Context) (Provider, error) {
		return namedProvider{name: "document"}, nil
	})
	f.Register(enums.ProviderSourceAPI, func(context.Context) (Provider, error) {
		return nil, errors.New("missing api credentials")
	})

	tests := []struct {
		raw      string
		wantName string
		wantUsed enums.ProviderSource
		warned   bool
	}{
		{raw: "local", wantName: "local", wantUsed: enums.ProviderSourceLocal},
		{raw: "firestore", wantName: "document", wantUsed: enums.ProviderSourceDocument},
		{raw: "api", wantName: "local", wantUsed: enums.ProviderSourceLocal, warned: true},
		{raw: "graphql", wantName: "local", wantUsed: enums.ProviderSourceLocal, warned: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			buf.Reset()
			p, used := f.Resolve(context.Background(), tt.raw)
			assert.Equal(t, tt.wantName, p.Name())
			assert.Equal(t, tt.wantUsed, used)
			assert.Equal(t, tt.warned, strings.Contains(buf.String(), "falling back to local"))
		})
	}
}

func TestFactoryRequiresLocal(t *testing.T) {
	_, err := NewFactory(nil, logger.Nop(), nil)
	require.Error(t, err)
}

func TestRegistryGetSet(t *testing.T) {
	r := NewRegistry(namedProvider{name: "local"})
	assert.Equal(t, "local", r.Get().Name())

	r.Set(namedProvider{name: "document"})
	assert.Equal(t, "document", r.Get().Name())

	r.Set(nil)
	assert.Equal(t, "document", r.Get().Name())
}

func TestFactoryInitializeReturnsRegistry(t *testing.T) {
	buf := &bytes.Buffer{}
	f := newTestFactory(t, buf)
	reg := f.Initialize(context.Background(), "")
	assert.Equal(t, "local", reg.Get().Name())
	assert.Contains(t, buf.String(), "data provider initialized")
}

func TestPrepareProduct(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	input := models.Product{NameAr: "زيت محرك", CategoryID: "c1", Type: enums.ProductTypePart, Price: 40}

	out, err := PrepareProduct(input, now)
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, now, out.CreatedAt)
	assert.Equal(t, now, out.UpdatedAt)
	assert.Equal(t, enums.ProductStatusPublished, out.Status)

	input.ID = "preset"
	_, err = PrepareProduct(input, now)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestPatchProductKeepsIdentity(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(48 * time.Hour)
	existing := models.Product{ID: "p1", NameAr: "زيت", CategoryID: "c1", Type: enums.ProductTypePart, Price: 10, Status: enums.ProductStatusPublished, CreatedAt: created, UpdatedAt: created}

	out, err := PatchProduct(existing, models.ProductPatch{Price: models.Ptr(12.5)}, now)
	require.NoError(t, err)
	assert.Equal(t, "p1", out.ID)
	assert.Equal(t, created, out.CreatedAt)
	assert.Equal(t, now, out.UpdatedAt)
	assert.Equal(t, 12.5, out.Price)

	_, err = PatchProduct(existing, models.ProductPatch{Price: models.Ptr(-3.0)}, now)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestPrepareOrderForcesPending(t *testing.T) {
	order := models.Order{
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		CustomerPhone: "0555555555",
		Items:         []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: 10, Total: 10}},
		Status:        enums.OrderStatusDelivered,
	}
	out, err := PrepareOrder(order, time.Now())
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, out.Status)
}

func TestPatchOrderStateMachine(t *testing.T) {
	existing := models.Order{
		ID:            "o1",
		CustomerName:  "Sara",
		CustomerEmail: "sara@example.com",
		CustomerPhone: "0555555555",
		Items:         []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: 10, Total: 10}},
		Status:        enums.OrderStatusPending,
	}

	_, err := PatchOrder(existing, models.OrderPatch{Status: models.Ptr(enums.OrderStatusShipped)}, time.Now())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	out, err := PatchOrder(existing, models.OrderPatch{Status: models.Ptr(enums.OrderStatusConfirmed)}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, out.Status)
}

func TestPatchCategoryAndBrand(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c, err := PatchCategory(models.Category{ID: "c1", NameAr: "زيوت", CreatedAt: created}, models.CategoryPatch{NameEn: models.Ptr("Oils")})
	require.NoError(t, err)
	assert.Equal(t, "Oils", c.NameEn)
	assert.Equal(t, created, c.CreatedAt)

	_, err = PatchBrand(models.Brand{ID: "b1", Name: "Motul"}, models.BrandPatch{Name: models.Ptr("")})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
