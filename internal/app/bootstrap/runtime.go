package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/physio-clinic/internal/artifacts"
	appconfig "github.com/wolfman30/physio-clinic/internal/config"
	"github.com/wolfman30/physio-clinic/internal/notify"
	"github.com/wolfman30/physio-clinic/internal/storage"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

// Backends carries the already-connected clients a store may be built on.
// Any of them may be nil when the matching backend is not configured.
type Backends struct {
	Redis    *redis.Client
	Postgres *pgxpool.Pool
	S3       storage.S3API
	DynamoDB storage.DynamoAPI
}

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildPostgresPool connects to DATABASE_URL. An empty URL returns nil.
func BuildPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) *pgxpool.Pool {
	if strings.TrimSpace(databaseURL) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Warn("failed to connect postgres", "error", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Warn("postgres not reachable", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

// BuildStore selects the visitor state backend named by STORAGE_BACKEND.
// A backend that is named but missing its client is an error; the memory
// store is only used when asked for.
func BuildStore(cfg *appconfig.Config, b Backends, logger *logging.Logger) (storage.Store, error) {
	if logger == nil {
		logger = logging.Default()
	}
	backend := "memory"
	if cfg != nil && cfg.StorageBackend != "" {
		backend = cfg.StorageBackend
	}

	var (
		store storage.Store
		err   error
	)
	switch backend {
	case "memory":
		store = storage.NewMemoryStore()
	case "file":
		store, err = storage.NewFileStore(cfg.StorageDir)
	case "redis":
		if b.Redis == nil {
			return nil, fmt.Errorf("bootstrap: storage backend redis requires REDIS_ADDR")
		}
		store = storage.NewRedisStore(b.Redis)
	case "postgres":
		if b.Postgres == nil {
			return nil, fmt.Errorf("bootstrap: storage backend postgres requires DATABASE_URL")
		}
		store = storage.NewPostgresStore(b.Postgres)
	case "s3":
		store, err = storage.NewS3Store(b.S3, cfg.S3Bucket, cfg.S3Prefix)
	case "dynamodb":
		store, err = storage.NewDynamoStore(b.DynamoDB, cfg.DynamoDBTable)
	default:
		return nil, fmt.Errorf("bootstrap: unknown storage backend %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("bootstrap: storage backend %s: %w", backend, err)
	}

	logger.Info("visitor state storage configured", "backend", backend)
	return store, nil
}

// BuildArtifactRegistry returns the calendar download registry. Redis is used
// when ARTIFACT_BACKEND=redis and a client is available, otherwise memory.
func BuildArtifactRegistry(cfg *appconfig.Config, redisClient *redis.Client, logger *logging.Logger) artifacts.Registry {
	if logger == nil {
		logger = logging.Default()
	}
	ttl := artifacts.DefaultTTL
	backend := "memory"
	if cfg != nil {
		if cfg.ArtifactTTL > 0 {
			ttl = cfg.ArtifactTTL
		}
		if cfg.ArtifactBackend != "" {
			backend = cfg.ArtifactBackend
		}
	}

	if backend == "redis" {
		if redisClient != nil {
			return artifacts.NewRedisRegistry(redisClient, ttl)
		}
		logger.Warn("artifact backend redis requested without a redis client, using memory")
	}
	return artifacts.NewMemoryRegistry(ttl)
}

// BuildEmailSender returns the confirmation email sender for EMAIL_PROVIDER,
// or nil when email is disabled or not configured.
func BuildEmailSender(cfg *appconfig.Config, ses notify.SESAPI, logger *logging.Logger) notify.EmailSender {
	if cfg == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	switch cfg.EmailProvider {
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("sendgrid selected without SENDGRID_API_KEY, confirmation emails disabled")
	case "ses":
		if sender := notify.NewSESSender(ses, notify.SESConfig{
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger); sender != nil {
			return sender
		}
		logger.Warn("ses selected without a client, confirmation emails disabled")
	case "stub":
		return notify.NewStubEmailSender(logger)
	case "", "none":
	default:
		logger.Warn("unknown email provider, confirmation emails disabled", "provider", cfg.EmailProvider)
	}
	return nil
}
