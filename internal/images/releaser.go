package images

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/metrics"
	"github.com/soft99/storefront-backend/pkg/storage/gcs"
)

// Releaser deletes stored product images.
type Releaser interface {
	Release(ctx context.Context, refs []string) error
}

// Noop releases nothing; used when no bucket is configured.
type Noop struct{}

func (Noop) Release(context.Context, []string) error { return nil }

type objectDeleter interface {
	DeleteObject(ctx context.Context, bucket, object string) error
}

// GCSReleaser deletes images stored in Cloud Storage and skips references
// hosted anywhere else.
type GCSReleaser struct {
	client objectDeleter
}

func NewGCSReleaser(client *gcs.Client) (*GCSReleaser, error) {
	if client == nil {
		return nil, fmt.Errorf("gcs client required")
	}
	return &GCSReleaser{client: client}, nil
}

// Release attempts every reference and returns the combined failures.
// Objects that are already gone count as released.
func (r *GCSReleaser) Release(ctx context.Context, refs []string) error {
	var errs error
	for _, ref := range refs {
		bucket, object, ok := gcs.ParseObjectURL(ref)
		if !ok {
			continue
		}
		if err := r.client.DeleteObject(ctx, bucket, object); err != nil && !errors.Is(err, gcs.ErrObjectNotFound) {
			errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", ref, err))
		}
	}
	return errs
}

// ReleaseBestEffort runs r and only logs failures; a product delete never
// fails because of its images.
func ReleaseBestEffort(ctx context.Context, r Releaser, logg *logger.Logger, m *metrics.StorefrontMetrics, productID string, refs []string) {
	if r == nil || len(refs) == 0 {
		return
	}
	err := r.Release(ctx, refs)
	if err == nil {
		return
	}
	failures := multierr.Errors(err)
	m.AddImageReleaseFailures(len(failures))
	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{"product_id": productID, "failed_images": len(failures)})
		logg.WarnErr(ctx, "product image release failed", err)
	}
}
