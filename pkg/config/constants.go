package config

const EnvPrefix = "SOFT99"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"
	DefaultSQLiteDSN = "file:soft99.db?cache=shared"
)

// MaxMigrationBatchSize mirrors the document store batch write ceiling.
const MaxMigrationBatchSize = 500

const (
	EnvAppEnv             = "SOFT99_APP_ENV"
	EnvPort               = "SOFT99_APP_PORT"
	EnvLogLevel           = "SOFT99_LOG_LEVEL"
	EnvDataSource         = "SOFT99_DATA_SOURCE"
	EnvSnapshotDriver     = "SOFT99_SNAPSHOT_DRIVER"
	EnvMongoURI           = "SOFT99_MONGO_URI"
	EnvMongoHost          = "SOFT99_MONGO_HOST"
	EnvMongoUser          = "SOFT99_MONGO_USER"
	EnvMongoPassword      = "SOFT99_MONGO_PASSWORD"
	EnvDBDSN              = "SOFT99_DB_DSN"
	EnvDBDriver           = "SOFT99_DB_DRIVER"
	EnvDBHost             = "SOFT99_DB_HOST"
	EnvDBUser             = "SOFT99_DB_USER"
	EnvDBName             = "SOFT99_DB_NAME"
	EnvRedisURL           = "SOFT99_REDIS_URL"
	EnvJWTSecret          = "SOFT99_JWT_SECRET"
	EnvGCSBucket          = "SOFT99_GCS_BUCKET_NAME"
	EnvCheckoutTaxRate    = "SOFT99_CHECKOUT_TAX_RATE"
	EnvMigrationBatchSize = "SOFT99_MIGRATION_BATCH_SIZE"
	EnvSerpAPIKey         = "SERPAPI_API_KEY"
	EnvBingKey            = "BING_IMAGE_SEARCH_KEY"
	EnvImageProvider      = "IMAGE_PROVIDER"
	EnvImageLimit         = "IMAGE_LIMIT"
)

var postgresDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
