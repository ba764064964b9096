package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Provider     ProviderConfig
	Snapshot     SnapshotConfig
	Mongo        MongoConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	ImageFetch   ImageFetchConfig
	Migration    MigrationConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Mongo.ensureURI(); err != nil {
		return nil, err
	}
	if cfg.Migration.BatchSize <= 0 || cfg.Migration.BatchSize > MaxMigrationBatchSize {
		return nil, fmt.Errorf("%s must be between 1 and %d", EnvMigrationBatchSize, MaxMigrationBatchSize)
	}
	return &cfg, nil
}

// LoadImageFetch reads only the image fetcher settings; the CLI runs without
// the service environment.
func LoadImageFetch() (*ImageFetchConfig, error) {
	var cfg ImageFetchConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing image fetch config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SOFT99_APP_ENV" default:"dev"`
	Port         string `envconfig:"SOFT99_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SOFT99_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOFT99_LOG_WARN_STACK" default:"false"`
	StoreName    string `envconfig:"SOFT99_STORE_NAME" default:"Soft99"`
	// CORSOrigins is a comma separated allow list; empty means local dev origins.
	CORSOrigins []string `envconfig:"SOFT99_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// ProviderConfig selects the data provider the storefront reads from.
type ProviderConfig struct {
	Source   string `envconfig:"SOFT99_DATA_SOURCE" default:"local"`
	SeedPath string `envconfig:"SOFT99_SEED_PATH"`
}

type SnapshotConfig struct {
	Driver string        `envconfig:"SOFT99_SNAPSHOT_DRIVER" default:"file"`
	Dir    string        `envconfig:"SOFT99_SNAPSHOT_DIR" default:"data/snapshots"`
	KeyTTL time.Duration `envconfig:"SOFT99_SNAPSHOT_KEY_TTL" default:"0s"`
}

type MongoConfig struct {
	URI         string        `envconfig:"SOFT99_MONGO_URI"`
	Host        string        `envconfig:"SOFT99_MONGO_HOST"`
	Port        int           `envconfig:"SOFT99_MONGO_PORT" default:"27017"`
	User        string        `envconfig:"SOFT99_MONGO_USER"`
	Password    string        `envconfig:"SOFT99_MONGO_PASSWORD"`
	AuthDB      string        `envconfig:"SOFT99_MONGO_AUTH_DB" default:"admin"`
	Database    string        `envconfig:"SOFT99_MONGO_DATABASE" default:"soft99"`
	OpTimeout   time.Duration `envconfig:"SOFT99_MONGO_OP_TIMEOUT" default:"5s"`
	ConnTimeout time.Duration `envconfig:"SOFT99_MONGO_CONNECT_TIMEOUT" default:"10s"`
}

// Enabled reports whether a document store is configured.
func (m MongoConfig) Enabled() bool {
	return strings.TrimSpace(m.URI) != ""
}

func (m *MongoConfig) ensureURI() error {
	if m.URI != "" || m.Host == "" {
		return nil
	}
	u := &url.URL{
		Scheme: "mongodb",
		Host:   fmt.Sprintf("%s:%d", m.Host, m.Port),
		Path:   "/",
	}
	if m.User != "" {
		u.User = url.UserPassword(m.User, m.Password)
		q := u.Query()
		q.Set("authSource", m.AuthDB)
		u.RawQuery = q.Encode()
	}
	m.URI = u.String()
	return nil
}

type DBConfig struct {
	DSN    string `envconfig:"SOFT99_DB_DSN"`
	Driver string `envconfig:"SOFT99_DB_DRIVER" default:"sqlite"`

	Host     string `envconfig:"SOFT99_DB_HOST"`
	Port     int    `envconfig:"SOFT99_DB_PORT" default:"5432"`
	User     string `envconfig:"SOFT99_DB_USER"`
	Password string `envconfig:"SOFT99_DB_PASSWORD"`
	Name     string `envconfig:"SOFT99_DB_NAME"`
	SSLMode  string `envconfig:"SOFT99_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOFT99_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SOFT99_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SOFT99_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOFT99_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsPostgres() bool {
	return strings.EqualFold(db.Driver, DBDriverPostgres)
}

type RedisConfig struct {
	URL          string        `envconfig:"SOFT99_REDIS_URL"`
	Address      string        `envconfig:"SOFT99_REDIS_ADDR"`
	Password     string        `envconfig:"SOFT99_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOFT99_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOFT99_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOFT99_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOFT99_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOFT99_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOFT99_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"SOFT99_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SOFT99_JWT_ISSUER" default:"soft99"`
	ExpirationMinutes int    `envconfig:"SOFT99_JWT_EXPIRATION_MINUTES" default:"60"`
}

func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SOFT99_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"SOFT99_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SOFT99_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"SOFT99_GCS_BUCKET_NAME"`
}

func (g GCSConfig) Enabled() bool {
	return strings.TrimSpace(g.BucketName) != ""
}

type CartConfig struct {
	TTL time.Duration `envconfig:"SOFT99_CART_TTL" default:"720h"`
}

type CheckoutConfig struct {
	TaxRate               float64 `envconfig:"SOFT99_CHECKOUT_TAX_RATE" default:"0.15"`
	FlatShipping          float64 `envconfig:"SOFT99_CHECKOUT_FLAT_SHIPPING" default:"25"`
	FreeShippingThreshold float64 `envconfig:"SOFT99_CHECKOUT_FREE_SHIPPING_THRESHOLD" default:"500"`
	Currency              string  `envconfig:"SOFT99_CHECKOUT_CURRENCY" default:"SAR"`
}

// ImageFetchConfig keeps the unprefixed key names the fetch scripts always used.
type ImageFetchConfig struct {
	SerpAPIKey  string        `envconfig:"SERPAPI_API_KEY"`
	BingKey     string        `envconfig:"BING_IMAGE_SEARCH_KEY"`
	Providers   string        `envconfig:"IMAGE_PROVIDER" default:"serpapi,bing"`
	Limit       int           `envconfig:"IMAGE_LIMIT" default:"3"`
	Concurrency int           `envconfig:"SOFT99_IMAGE_FETCH_CONCURRENCY" default:"4"`
	Timeout     time.Duration `envconfig:"SOFT99_IMAGE_FETCH_TIMEOUT" default:"15s"`
	SerpAPIURL  string        `envconfig:"SOFT99_SERPAPI_ENDPOINT" default:"https://serpapi.com/search.json"`
	BingURL     string        `envconfig:"SOFT99_BING_ENDPOINT" default:"https://api.bing.microsoft.com/v7.0/images/search"`
}

// ProviderOrder returns the normalized searcher names in priority order.
func (c ImageFetchConfig) ProviderOrder() []string {
	var out []string
	for _, part := range strings.Split(c.Providers, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

type MigrationConfig struct {
	BatchSize int `envconfig:"SOFT99_MIGRATION_BATCH_SIZE" default:"450"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SOFT99_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if !db.IsPostgres() {
		db.DSN = DefaultSQLiteDSN
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range postgresDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
