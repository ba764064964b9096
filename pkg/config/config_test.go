package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if cfg.Provider.Source != "local" {
		t.Fatalf("expected default provider local, got %q", cfg.Provider.Source)
	}
	if cfg.Migration.BatchSize != 450 {
		t.Fatalf("expected default batch size 450, got %d", cfg.Migration.BatchSize)
	}
	if cfg.Checkout.Currency != "SAR" {
		t.Fatalf("expected SAR currency, got %q", cfg.Checkout.Currency)
	}
	if cfg.Cart.TTL != 720*time.Hour {
		t.Fatalf("unexpected cart ttl %v", cfg.Cart.TTL)
	}
	if cfg.DB.DSN != DefaultSQLiteDSN {
		t.Fatalf("expected sqlite default dsn, got %q", cfg.DB.DSN)
	}
	if cfg.Mongo.Enabled() {
		t.Fatalf("mongo should be disabled without uri or host")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvJWTSecret); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvJWTSecret, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_PostgresRequiresHostOrDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected postgres without dsn or host to fail")
	}

	t.Setenv(EnvDBHost, "localhost")
	t.Setenv(EnvDBUser, "soft99")
	t.Setenv(EnvDBName, "storefront")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.DSN != "postgres://soft99@localhost:5432/storefront?sslmode=disable" {
		t.Fatalf("unexpected dsn %q", cfg.DB.DSN)
	}
}

func TestLoad_MongoURIFromParts(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvMongoHost, "mongo")
	t.Setenv(EnvMongoUser, "root")
	t.Setenv(EnvMongoPassword, "pw")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Mongo.URI != "mongodb://root:pw@mongo:27017/?authSource=admin" {
		t.Fatalf("unexpected mongo uri %q", cfg.Mongo.URI)
	}
	if !cfg.Mongo.Enabled() {
		t.Fatalf("mongo should be enabled")
	}
}

func TestLoad_RejectsOversizedBatch(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvMigrationBatchSize, "501")

	if _, err := Load(); err == nil {
		t.Fatal("expected batch size above 500 to fail")
	}
}

func TestLoadImageFetchUsesUnprefixedKeys(t *testing.T) {
	t.Setenv(EnvSerpAPIKey, "serp")
	t.Setenv(EnvBingKey, "bing")
	t.Setenv(EnvImageProvider, " Bing, serpapi ,")
	t.Setenv(EnvImageLimit, "5")

	cfg, err := LoadImageFetch()
	if err != nil {
		t.Fatalf("LoadImageFetch() returned unexpected error: %v", err)
	}
	if cfg.SerpAPIKey != "serp" || cfg.BingKey != "bing" {
		t.Fatalf("unexpected keys %+v", cfg)
	}
	if cfg.Limit != 5 {
		t.Fatalf("expected limit 5, got %d", cfg.Limit)
	}
	order := cfg.ProviderOrder()
	if len(order) != 2 || order[0] != "bing" || order[1] != "serpapi" {
		t.Fatalf("unexpected provider order %v", order)
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	if !(AppConfig{Env: "DEV"}).IsDev() {
		t.Fatal("expected DEV to be dev")
	}
	if !(AppConfig{Env: "prod"}).IsProd() {
		t.Fatal("expected prod to be prod")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvDBDriver, "sqlite")
	t.Setenv(EnvDBDSN, "")
	t.Setenv(EnvDBHost, "")
	t.Setenv(EnvMongoURI, "")
	t.Setenv(EnvMongoHost, "")
	t.Setenv(EnvMigrationBatchSize, "450")
}
