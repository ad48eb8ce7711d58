package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Minio    MinioConfig
	Upload   UploadConfig
	NATS     NATSConfig
	Database DatabaseConfig
	Server   ServerConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint         string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	AccessKey        string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey        string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	BucketPrefix     string        `envconfig:"MINIO_BUCKET_PREFIX" default:"tenant"`
	OperationTimeout time.Duration `envconfig:"MINIO_OPERATION_TIMEOUT" default:"30s"`
	UseSSL           bool          `envconfig:"MINIO_USE_SSL" default:"false"`
}

type UploadConfig struct {
	// MultipartThreshold is the largest size still served by a single
	// presigned PUT; anything above it goes through the multipart protocol.
	MultipartThreshold int64         `envconfig:"UPLOAD_MULTIPART_THRESHOLD" default:"104857600"` // 100MB
	MaxUploadSize      int64         `envconfig:"UPLOAD_MAX_SIZE" default:"53687091200"`          // 50GB
	PartSize           int64         `envconfig:"UPLOAD_PART_SIZE" default:"10485760"`            // 10MB
	SessionTTL         time.Duration `envconfig:"UPLOAD_SESSION_TTL" default:"1h"`
	BatchMaxItems      int           `envconfig:"UPLOAD_BATCH_MAX_ITEMS" default:"100"`
	ReapEvery          time.Duration `envconfig:"UPLOAD_REAP_EVERY" default:"15m"`
	ReapBatchSize      int           `envconfig:"UPLOAD_REAP_BATCH_SIZE" default:"200"`
	// EscalateAfterFailures is the failure count at which a support ticket
	// is opened for a session.
	EscalateAfterFailures int `envconfig:"UPLOAD_ESCALATE_AFTER_FAILURES" default:"3"`
	// PlanLimitBytes is the per-upload allowance the built-in plan gate
	// enforces. 0 means unlimited.
	PlanLimitBytes int64 `envconfig:"UPLOAD_PLAN_LIMIT_BYTES" default:"0"`
}

type NATSConfig struct {
	URL        string `envconfig:"NATS_URL" required:"true"`
	StreamName string `envconfig:"NATS_STREAM_NAME" default:"ASSETS"`
	// SubjectPrefix is prepended to the event type, e.g. "assets.asset.created".
	SubjectPrefix string `envconfig:"NATS_SUBJECT_PREFIX" default:"assets"`
	ClientName    string `envconfig:"NATS_CLIENT_NAME" default:"assetvault-api"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
