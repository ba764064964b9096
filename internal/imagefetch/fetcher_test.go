package imagefetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soft99/storefront-backend/pkg/config"
	"github.com/soft99/storefront-backend/pkg/logger"
)

func TestSerpAPISearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "google_images", q.Get("engine"))
		assert.Equal(t, "serp-key", q.Get("api_key"))
		assert.Equal(t, "Soft99 Chain Lube", q.Get("q"))
		_, _ = w.Write([]byte(`{"image_results":[
			{"original":"https://m.media-amazon.com/a.jpg"},
			{"original":"https://cdn.test/1.jpg"},
			{"original":"https://CDN.test/1.jpg"},
			{"original":""},
			{"original":"https://cdn.test/2.jpg"},
			{"original":"https://cdn.test/3.jpg"}]}`))
	}))
	defer srv.Close()

	s, err := NewSerpAPI("serp-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	urls, err := s.Search(context.Background(), "Soft99 Chain Lube", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.test/1.jpg", "https://cdn.test/2.jpg"}, urls)
}

func TestBingSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bing-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "6", r.URL.Query().Get("count"))
		_, _ = w.Write([]byte(`{"value":[{"contentUrl":"https://i.ebay.com/x.jpg"},{"contentUrl":"https://img.test/b.jpg"}]}`))
	}))
	defer srv.Close()

	b, err := NewBing("bing-key", WithBaseURL(srv.URL))
	require.NoError(t, err)
	urls, err := b.Search(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.test/b.jpg"}, urls)
}

func TestSearchSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s, err := NewSerpAPI("k", WithBaseURL(srv.URL))
	require.NoError(t, err)
	_, err = s.Search(context.Background(), "q", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSearchersRequireKeys(t *testing.T) {
	_, err := NewSerpAPI(" ")
	assert.ErrorIs(t, err, errAPIKeyRequired)
	_, err = NewBing("")
	assert.ErrorIs(t, err, errAPIKeyRequired)
}

func TestBuildSearchersSkipsMissingKeys(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf, Format: "json"})
	cfg := config.ImageFetchConfig{BingKey: "bing-key", Providers: "serpapi, BING ,flickr"}

	searchers := BuildSearchers(context.Background(), cfg, logg, nil)
	require.Len(t, searchers, 1)
	assert.Equal(t, BingName, searchers[0].Name())
	assert.Contains(t, buf.String(), "imagefetch.searcher_skipped")
	assert.Contains(t, buf.String(), "imagefetch.unknown_searcher")
}

// stubSearcher returns canned URLs per query.
type stubSearcher struct {
	name  string
	urls  map[string][]string
	err   error
	calls atomic.Int32
}

func (s *stubSearcher) Name() string { return s.name }

func (s *stubSearcher) Search(_ context.Context, query string, limit int) ([]string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return clean(s.urls[query], limit), nil
}

func rowsFor(t *testing.T, skus ...string) []Row {
	t.Helper()
	rows, err := ReadCSV(strings.NewReader("sku\n" + strings.Join(skus, "\n") + "\n"))
	require.NoError(t, err)
	return rows
}

func TestFetcherFallsThroughInPriorityOrder(t *testing.T) {
	primary := &stubSearcher{name: "primary", urls: map[string][]string{
		"A": {"https://x.test/1.jpg"},
		"B": {"https://x.test/1.jpg", "https://x.test/2.jpg", "https://x.test/3.jpg"},
	}}
	secondary := &stubSearcher{name: "secondary", urls: map[string][]string{
		"A": {"https://X.test/1.jpg", "https://y.test/2.jpg", "https://y.test/3.jpg"},
	}}
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf, Format: "json"})
	f, err := NewFetcher([]Searcher{primary, secondary}, 3, 2, logg)
	require.NoError(t, err)

	results, err := f.Run(context.Background(), rowsFor(t, "A", "B", "C"))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []string{"https://x.test/1.jpg", "https://y.test/2.jpg", "https://y.test/3.jpg"}, results[0].Images)
	assert.Len(t, results[1].Images, 3)
	assert.Empty(t, results[2].Images)
	assert.Equal(t, "C", results[2].Row.Get("sku"))
	// B is satisfied by the primary alone
	assert.Equal(t, int32(2), secondary.calls.Load())
	assert.Contains(t, buf.String(), "imagefetch.too_few_images")
}

func TestFetcherContinuesAfterSearcherError(t *testing.T) {
	broken := &stubSearcher{name: "broken", err: errors.New("boom")}
	working := &stubSearcher{name: "working", urls: map[string][]string{"A": {"https://ok.test/a.jpg"}}}
	f, err := NewFetcher([]Searcher{broken, working}, 1, 1, logger.Nop())
	require.NoError(t, err)

	results, err := f.Run(context.Background(), rowsFor(t, "A"))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://ok.test/a.jpg"}, results[0].Images)
}

func TestFetcherPreservesOrderUnderConcurrency(t *testing.T) {
	urls := map[string][]string{}
	var skus []string
	for i := 0; i < 50; i++ {
		sku := fmt.Sprintf("SKU-%02d", i)
		skus = append(skus, sku)
		urls[sku] = []string{"https://cdn.test/" + sku + ".jpg"}
	}
	f, err := NewFetcher([]Searcher{&stubSearcher{name: "s", urls: urls}}, 1, 8, logger.Nop())
	require.NoError(t, err)

	results, err := f.Run(context.Background(), rowsFor(t, skus...))
	require.NoError(t, err)
	for i, r := range results {
		assert.Equal(t, skus[i], r.Row.Get("sku"))
		assert.Equal(t, []string{"https://cdn.test/" + skus[i] + ".jpg"}, r.Images)
	}
}

func TestFetcherStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f, err := NewFetcher(nil, 3, 1, logger.Nop())
	require.NoError(t, err)
	_, err = f.Run(ctx, rowsFor(t, "A", "B"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFetcherDefaults(t *testing.T) {
	f, err := NewFetcher(nil, 0, 0, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, f.limit)
	assert.Equal(t, DefaultConcurrency, f.concurrency)
	_, err = NewFetcher(nil, 1, 1, nil)
	assert.Error(t, err)
}
