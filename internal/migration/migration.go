package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/soft99/storefront-backend/internal/seed"
	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/models"
)

const DefaultBatchSize = 450

// Sink receives one batch per call. Records keep their seed ids and replace
// whatever the sink already holds under the same id.
type Sink interface {
	ImportBrands(ctx context.Context, batch []models.Brand) error
	ImportCategories(ctx context.Context, batch []models.Category) error
	ImportProducts(ctx context.Context, batch []models.Product) error
	Name() string
}

type Options struct {
	BatchSize int
	DryRun    bool
	// Now stamps products missing updated_at.
	Now func() time.Time
}

type KindReport struct {
	Kind    string `json:"kind"`
	Records int    `json:"records"`
	Batches int    `json:"batches"`
}

type Report struct {
	Sink   string       `json:"sink"`
	DryRun bool         `json:"dry_run"`
	Kinds  []KindReport `json:"kinds"`
}

// Total sums records across kinds.
func (r Report) Total() int {
	return lo.SumBy(r.Kinds, func(k KindReport) int { return k.Records })
}

// ChunkError reports the chunk that failed and how much of its kind was
// already committed.
type ChunkError struct {
	Kind      string
	Chunk     int
	Committed int
	Err       error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("migrate %s chunk %d (%d records committed): %v", e.Kind, e.Chunk, e.Committed, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

type Migrator struct {
	sink Sink
	opts Options
	logg *logger.Logger
}

func New(sink Sink, opts Options, logg *logger.Logger) (*Migrator, error) {
	if sink == nil {
		return nil, fmt.Errorf("sink required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.BatchSize < 0 || opts.BatchSize > config.MaxMigrationBatchSize {
		return nil, fmt.Errorf("batch size must be between 1 and %d", config.MaxMigrationBatchSize)
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Migrator{sink: sink, opts: opts, logg: logg}, nil
}

// Run copies brands, categories then products into the sink.
func (m *Migrator) Run(ctx context.Context, ds *seed.Dataset) (*Report, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset required")
	}
	ctx = m.logg.WithFields(ctx, map[string]any{"sink": m.sink.Name(), "dry_run": m.opts.DryRun})
	report := &Report{Sink: m.sink.Name(), DryRun: m.opts.DryRun}

	brands, err := migrateKind(ctx, m, "brands", ds.Brands, m.sink.ImportBrands)
	report.Kinds = append(report.Kinds, brands)
	if err != nil {
		return report, err
	}
	categories, err := migrateKind(ctx, m, "categories", ds.Categories, m.sink.ImportCategories)
	report.Kinds = append(report.Kinds, categories)
	if err != nil {
		return report, err
	}
	products, err := migrateKind(ctx, m, "products", m.prepareProducts(ds.Products), m.sink.ImportProducts)
	report.Kinds = append(report.Kinds, products)
	if err != nil {
		return report, err
	}

	m.logg.Info(m.logg.WithField(ctx, "records", report.Total()), "seed migration completed")
	return report, nil
}

func (m *Migrator) prepareProducts(in []models.Product) []models.Product {
	now := m.opts.Now()
	return lo.Map(in, func(p models.Product, _ int) models.Product {
		out := p.Clone()
		if out.Images == nil {
			out.Images = []string{}
		}
		if out.CreatedAt.IsZero() {
			out.CreatedAt = now
		}
		if out.UpdatedAt.IsZero() {
			out.UpdatedAt = now
		}
		return out
	})
}

func migrateKind[T any](ctx context.Context, m *Migrator, kind string, records []T, write func(context.Context, []T) error) (KindReport, error) {
	report := KindReport{Kind: kind}
	chunks := lo.Chunk(records, m.opts.BatchSize)
	ctx = m.logg.WithField(ctx, "kind", kind)

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return report, &ChunkError{Kind: kind, Chunk: i, Committed: report.Records, Err: err}
		}
		if !m.opts.DryRun {
			if err := write(ctx, chunk); err != nil {
				return report, &ChunkError{Kind: kind, Chunk: i, Committed: report.Records, Err: err}
			}
		}
		report.Records += len(chunk)
		report.Batches++
		m.logg.Debug(m.logg.WithFields(ctx, map[string]any{"chunk": i, "size": len(chunk)}), "batch committed")
	}

	m.logg.Info(m.logg.WithFields(ctx, map[string]any{"records": report.Records, "batches": report.Batches}), "kind migrated")
	return report, nil
}
