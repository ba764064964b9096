package imagefetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
)

const (
	SerpAPIName = "serpapi"
	BingName    = "bing"

	defaultSerpAPIURL       = "https://serpapi.com/search.json"
	defaultBingURL          = "https://api.bing.microsoft.com/v7.0/images/search"
	errorBodyLimit    int64 = 1024
)

var errAPIKeyRequired = errors.New("image search api key is required")

// Searcher returns up to limit candidate image URLs for a query.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

// Option configures a searcher client.
type Option func(*client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func newClient(apiKey, baseURL string, opts []Option) (client, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return client{}, errAPIKeyRequired
	}
	c := client{
		apiKey:     key,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c, nil
}

func (c client) getJSON(ctx context.Context, name string, params url.Values, header http.Header, out any) error {
	endpoint := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build "+name+" request")
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+name+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), name+" request failed")
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+name+" response")
	}
	return nil
}

// SerpAPI queries Google Images through SerpApi.
type SerpAPI struct {
	client
}

func NewSerpAPI(apiKey string, opts ...Option) (*SerpAPI, error) {
	c, err := newClient(apiKey, defaultSerpAPIURL, opts)
	if err != nil {
		return nil, err
	}
	return &SerpAPI{client: c}, nil
}

func (s *SerpAPI) Name() string { return SerpAPIName }

func (s *SerpAPI) Search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "google_images")
	params.Set("api_key", s.apiKey)
	params.Set("ijn", "0")

	var payload struct {
		ImageResults []struct {
			Original string `json:"original"`
		} `json:"image_results"`
	}
	if err := s.getJSON(ctx, SerpAPIName, params, nil, &payload); err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(payload.ImageResults))
	for _, r := range payload.ImageResults {
		urls = append(urls, r.Original)
	}
	return clean(urls, limit), nil
}

// Bing queries the Bing Image Search v7 API.
type Bing struct {
	client
}

func NewBing(apiKey string, opts ...Option) (*Bing, error) {
	c, err := newClient(apiKey, defaultBingURL, opts)
	if err != nil {
		return nil, err
	}
	return &Bing{client: c}, nil
}

func (b *Bing) Name() string { return BingName }

func (b *Bing) Search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	// over-fetch to survive the host filter
	params.Set("count", strconv.Itoa(limit*2))
	params.Set("safeSearch", "Off")
	header := http.Header{}
	header.Set("Ocp-Apim-Subscription-Key", b.apiKey)

	var payload struct {
		Value []struct {
			ContentURL string `json:"contentUrl"`
		} `json:"value"`
	}
	if err := b.getJSON(ctx, BingName, params, header, &payload); err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(payload.Value))
	for _, v := range payload.Value {
		urls = append(urls, v.ContentURL)
	}
	return clean(urls, limit), nil
}
