package gcs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func staticTokenSource(token string) *tokenSource {
	return &tokenSource{
		fetch: func(context.Context) (string, time.Time, error) {
			return token, time.Now().Add(time.Hour), nil
		},
	}
}

func newTestClient(baseURL string) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: time.Second},
		baseURL:       baseURL,
		defaultBucket: "soft99-media",
		tokenSource:   staticTokenSource("tok"),
	}
}

func TestDeleteObject(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/b/soft99-media/o/products/missing.jpg":
			w.WriteHeader(http.StatusNotFound)
		case "/b/soft99-media/o/products/broken.jpg":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("denied"))
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	ctx := context.Background()

	if err := client.DeleteObject(ctx, "", "products/oil 1.jpg"); err != nil {
		t.Fatalf("DeleteObject returned error: %v", err)
	}
	if gotPath != "/b/soft99-media/o/products%2Foil%201.jpg" {
		t.Fatalf("object name not escaped: %s", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}

	if err := client.DeleteObject(ctx, "", "products/missing.jpg"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if err := client.DeleteObject(ctx, "soft99-media", "products/broken.jpg"); err == nil {
		t.Fatal("expected forbidden delete to fail")
	}
}

func TestPing(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/b/soft99-media/o" || r.URL.Query().Get("maxResults") != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}

	var nilClient *Client
	if err := nilClient.Ping(context.Background()); err == nil {
		t.Fatal("expected nil client ping to fail")
	}
}

func TestParseObjectURL(t *testing.T) {
	tests := []struct {
		raw        string
		bucket     string
		object     string
		recognized bool
	}{
		{raw: "gs://soft99-media/products/a.jpg", bucket: "soft99-media", object: "products/a.jpg", recognized: true},
		{raw: "https://storage.googleapis.com/soft99-media/products/a.jpg", bucket: "soft99-media", object: "products/a.jpg", recognized: true},
		{raw: "https://soft99-media.storage.googleapis.com/products/a.jpg", bucket: "soft99-media", object: "products/a.jpg", recognized: true},
		{raw: "https://firebasestorage.googleapis.com/v0/b/soft99.appspot.com/o/products%2Fa.jpg?alt=media&token=x", bucket: "soft99.appspot.com", object: "products/a.jpg", recognized: true},
		{raw: "https://storage.googleapis.com/download/storage/v1/b/soft99-media/o/products%2Fa.jpg?alt=media", bucket: "soft99-media", object: "products/a.jpg", recognized: true},
		{raw: "https://cdn.example.com/a.jpg"},
		{raw: "https://storage.googleapis.com/only-bucket"},
		{raw: ""},
		{raw: "/images/local.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			bucket, object, ok := ParseObjectURL(tt.raw)
			if ok != tt.recognized || bucket != tt.bucket || object != tt.object {
				t.Fatalf("ParseObjectURL(%q) = (%q, %q, %v)", tt.raw, bucket, object, ok)
			}
		})
	}
}

func TestParsePrivateKeyRejectsGarbage(t *testing.T) {
	if _, err := parsePrivateKey("not a key"); err == nil {
		t.Fatal("expected invalid pem to fail")
	}
	if _, err := newServiceAccountTokenSource(http.DefaultClient, `{"client_email":""}`); err == nil {
		t.Fatal("expected incomplete credentials to fail")
	}
}
