package providers

import (
	"context"
	"fmt"

	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
)

// Builder constructs a provider on demand so missing credentials only fail
// the source that needs them.
type Builder func(ctx context.Context) (Provider, error)

type Factory struct {
	local    Provider
	builders map[enums.ProviderSource]Builder
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewFactory requires the local provider, which is always the fallback.
func NewFactory(local Provider, logg *logger.Logger, m *metrics.StorefrontMetrics) (*Factory, error) {
	if local == nil {
		return nil, fmt.Errorf("local provider required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Factory{
		local:    local,
		builders: map[enums.ProviderSource]Builder{},
		logg:     logg,
		metrics:  m,
	}, nil
}

// Register installs the builder for source.
func (f *Factory) Register(source enums.ProviderSource, build Builder) {
	if build == nil {
		return
	}
	f.builders[source] = build
}

// Resolve returns the provider for the raw source name and the source actually
// used. Unknown sources and builder failures fall back to local.
func (f *Factory) Resolve(ctx context.Context, raw string) (Provider, enums.ProviderSource) {
	source, err := enums.ParseProviderSource(raw)
	if err != nil {
		f.fallback(ctx, raw, err)
		return f.local, enums.ProviderSourceLocal
	}
	if source == enums.ProviderSourceLocal {
		return f.local, source
	}

	build, ok := f.builders[source]
	if !ok {
		f.fallback(ctx, raw, fmt.Errorf("no builder registered for %s", source))
		return f.local, enums.ProviderSourceLocal
	}
	p, err := build(ctx)
	if err != nil {
		f.fallback(ctx, raw, err)
		return f.local, enums.ProviderSourceLocal
	}
	return p, source
}

// Initialize resolves source and returns a registry holding the result.
func (f *Factory) Initialize(ctx context.Context, source string) *Registry {
	p, used := f.Resolve(ctx, source)
	ctx = f.logg.WithProvider(ctx, p.Name())
	f.logg.Info(f.logg.WithField(ctx, "source", used.String()), "data provider initialized")
	return NewRegistry(p)
}

func (f *Factory) fallback(ctx context.Context, requested string, cause error) {
	f.metrics.IncProviderFallback(requested)
	ctx = f.logg.WithField(ctx, "requested_source", requested)
	f.logg.WarnErr(ctx, "data provider unavailable, falling back to local", cause)
}
