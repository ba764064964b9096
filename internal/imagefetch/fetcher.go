package imagefetch

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/logger"
)

const (
	DefaultLimit       = 3
	DefaultConcurrency = 4
)

// Fetcher consults its searchers in priority order for every row.
type Fetcher struct {
	searchers   []Searcher
	limit       int
	concurrency int
	logg        *logger.Logger
}

func NewFetcher(searchers []Searcher, limit, concurrency int, logg *logger.Logger) (*Fetcher, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Fetcher{searchers: searchers, limit: limit, concurrency: concurrency, logg: logg}, nil
}

// BuildSearchers creates the searchers named in cfg order. Searchers without
// an API key and unknown names are skipped with a warning.
func BuildSearchers(ctx context.Context, cfg config.ImageFetchConfig, logg *logger.Logger, hc *http.Client) []Searcher {
	var searchers []Searcher
	opts := func(baseURL string) []Option {
		return []Option{WithHTTPClient(hc), WithBaseURL(baseURL)}
	}
	for _, name := range cfg.ProviderOrder() {
		ctx := logg.WithField(ctx, "searcher", name)
		var (
			s   Searcher
			err error
		)
		switch name {
		case SerpAPIName:
			s, err = NewSerpAPI(cfg.SerpAPIKey, opts(cfg.SerpAPIURL)...)
		case BingName:
			s, err = NewBing(cfg.BingKey, opts(cfg.BingURL)...)
		default:
			logg.Warn(ctx, "imagefetch.unknown_searcher")
			continue
		}
		if err != nil {
			logg.WarnErr(ctx, "imagefetch.searcher_skipped", err)
			continue
		}
		searchers = append(searchers, s)
	}
	if len(searchers) == 0 {
		logg.Warn(ctx, "imagefetch.no_searchers_configured")
	}
	return searchers
}

// Run searches every row with bounded concurrency. Results keep the input
// order. Only context cancellation aborts the run; searcher failures are
// logged and the next searcher is tried.
func (f *Fetcher) Run(ctx context.Context, rows []Row) ([]Result, error) {
	results := make([]Result, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for i, row := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			images := f.searchRow(gctx, row)
			results[i] = Result{Row: row, Images: images}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (f *Fetcher) searchRow(ctx context.Context, row Row) []string {
	query := row.Query()
	ctx = f.logg.WithFields(ctx, map[string]any{"sku": row.Get("sku"), "query": query})
	f.logg.Info(ctx, "imagefetch.searching")

	var found []string
	for _, s := range f.searchers {
		urls, err := s.Search(ctx, query, f.limit)
		if err != nil {
			f.logg.WarnErr(f.logg.WithField(ctx, "searcher", s.Name()), "imagefetch.search_failed", err)
			continue
		}
		found = append(found, urls...)
		if len(Dedupe(found)) >= f.limit {
			break
		}
	}
	images := clean(found, f.limit)
	if len(images) < f.limit {
		f.logg.Warn(f.logg.WithField(ctx, "found", len(images)), "imagefetch.too_few_images")
	}
	return images
}
