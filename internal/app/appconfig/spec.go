package appconfig

import (
	"time"

	"roadwatch.dev/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9820"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// infrastructure components connection instructions

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// NatsURL is the URL of the NATS server. See https://pkg.go.dev/github.com/nats-io/nats.go#Connect
	// for more information on how to construct a NATS URL.
	NatsURL string `required:"true" split_words:"true" default:"nats://127.0.0.1:4222"`

	// RedisURL is the URL of the Redis server, and by default uses redis db 1, to avoid potential collision
	// with a previously running backend instance. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/1"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// NominatimBaseURL is the base URL of the Nominatim instance used for reverse geocoding.
	// The default public instance enforces an absolute maximum of 1 request per second;
	// point this to a self-hosted instance for anything beyond hobby scale.
	NominatimBaseURL string `split_words:"true" default:"https://nominatim.openstreetmap.org"`

	// NominatimUserAgent identifies this deployment to the Nominatim operators, as
	// required by the OSM Nominatim usage policy.
	NominatimUserAgent string `split_words:"true" default:"roadwatch-backend (+https://roadwatch.dev)"`

	// GeocodeTimeout is the per-request timeout for reverse geocoding lookups.
	GeocodeTimeout time.Duration `split_words:"true" default:"5s"`

	// DedupWindow is the sliding window within which two submissions with an identical
	// content fingerprint are treated as duplicates.
	DedupWindow time.Duration `split_words:"true" default:"10m"`

	// WorkerEnabled is a flag to indicate whether to enable the analytics refresh worker.
	WorkerEnabled bool `split_words:"true"`

	// WorkerInterval describes the interval in-between analytics refresh batches.
	WorkerInterval time.Duration `split_words:"true" default:"5m"`

	// WorkerHeartbeatURL is pinged after each successful analytics refresh batch.
	// Leaving this empty disables the heartbeat.
	WorkerHeartbeatURL string `split_words:"true"`

	// AdminKey is the key used to authenticate the admin API.
	AdminKey string `split_words:"true"`

	// ArchiveEnabled gates the S3 archive exporter.
	ArchiveEnabled bool `split_words:"true"`

	// ArchiveS3Bucket is the bucket the archive exporter writes to.
	ArchiveS3Bucket string `split_words:"true"`

	// ArchiveS3Prefix is for the files in the bucket with no leading slash but optionally
	// (typically) with trailing slash, e.g. "v1/" or simply "" (empty string).
	ArchiveS3Prefix string `split_words:"true"`

	// AWSRegion is the region used by the S3 client.
	AWSRegion string `split_words:"true" default:"us-east-1"`

	// AWSAccessKey and AWSSecretKey override the default AWS credential chain when both are set.
	AWSAccessKey string `split_words:"true"`
	AWSSecretKey string `split_words:"true"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
