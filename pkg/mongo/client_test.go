package mongo

import (
	"context"
	"testing"

	"github.com/soft99/storefront-backend/pkg/config"
)

func TestNewRequiresURIAndDatabase(t *testing.T) {
	if _, err := New(context.Background(), config.MongoConfig{}, nil); err == nil {
		t.Fatal("expected missing uri to fail")
	}
	if _, err := New(context.Background(), config.MongoConfig{URI: "mongodb://localhost:27017"}, nil); err == nil {
		t.Fatal("expected missing database to fail")
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping on nil client to fail")
	}
	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("close on nil client should be a no-op: %v", err)
	}
}
