package bootstrap

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/physio-clinic/internal/artifacts"
	appconfig "github.com/wolfman30/physio-clinic/internal/config"
	"github.com/wolfman30/physio-clinic/internal/notify"
	"github.com/wolfman30/physio-clinic/internal/storage"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

type nopSES struct{}

func (nopSES) SendEmail(context.Context, *sesv2.SendEmailInput, ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	return &sesv2.SendEmailOutput{}, nil
}

func TestBuildRedisClient(t *testing.T) {
	logger := logging.New("error")
	assert.Nil(t, BuildRedisClient(context.Background(), &appconfig.Config{}, logger, true))

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	client := BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: addr}, logger, true)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	mr.Close()
	assert.Nil(t, BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: addr}, logger, true))
}

func TestBuildPostgresPoolEmptyURLReturnsNil(t *testing.T) {
	assert.Nil(t, BuildPostgresPool(context.Background(), "  ", logging.New("error")))
}

func TestBuildStoreBackends(t *testing.T) {
	logger := logging.New("error")
	mr := miniredis.RunT(t)
	redisClient := BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: mr.Addr()}, logger, false)
	t.Cleanup(func() { _ = redisClient.Close() })

	store, err := BuildStore(&appconfig.Config{}, Backends{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, store)

	store, err = BuildStore(&appconfig.Config{StorageBackend: "file", StorageDir: t.TempDir()}, Backends{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &storage.FileStore{}, store)

	store, err = BuildStore(&appconfig.Config{StorageBackend: "redis"}, Backends{Redis: redisClient}, logger)
	require.NoError(t, err)
	assert.IsType(t, &storage.RedisStore{}, store)
}

func TestBuildStoreRejectsMissingClients(t *testing.T) {
	logger := logging.New("error")
	for _, backend := range []string{"redis", "postgres", "s3", "dynamodb", "carrier-pigeon"} {
		_, err := BuildStore(&appconfig.Config{StorageBackend: backend, S3Bucket: "b", DynamoDBTable: "t"}, Backends{}, logger)
		assert.Error(t, err, backend)
	}
}

func TestBuildArtifactRegistry(t *testing.T) {
	logger := logging.New("error")
	reg := BuildArtifactRegistry(&appconfig.Config{ArtifactTTL: time.Minute}, nil, logger)
	assert.IsType(t, &artifacts.MemoryRegistry{}, reg)

	// Redis requested but unavailable falls back to memory.
	reg = BuildArtifactRegistry(&appconfig.Config{ArtifactBackend: "redis"}, nil, logger)
	assert.IsType(t, &artifacts.MemoryRegistry{}, reg)

	mr := miniredis.RunT(t)
	client := BuildRedisClient(context.Background(), &appconfig.Config{RedisAddr: mr.Addr()}, logger, false)
	t.Cleanup(func() { _ = client.Close() })
	reg = BuildArtifactRegistry(&appconfig.Config{ArtifactBackend: "redis"}, client, logger)
	assert.IsType(t, &artifacts.RedisRegistry{}, reg)
}

func TestBuildEmailSender(t *testing.T) {
	logger := logging.New("error")

	assert.Nil(t, BuildEmailSender(&appconfig.Config{EmailProvider: "none"}, nil, logger))
	// A missing key must not produce a typed-nil sender.
	assert.Nil(t, BuildEmailSender(&appconfig.Config{EmailProvider: "sendgrid"}, nil, logger))
	assert.Nil(t, BuildEmailSender(&appconfig.Config{EmailProvider: "ses"}, nil, logger))

	sender := BuildEmailSender(&appconfig.Config{EmailProvider: "sendgrid", SendGridAPIKey: "SG.test"}, nil, logger)
	assert.IsType(t, &notify.SendGridSender{}, sender)

	sender = BuildEmailSender(&appconfig.Config{EmailProvider: "ses"}, nopSES{}, logger)
	assert.IsType(t, &notify.SESSender{}, sender)

	sender = BuildEmailSender(&appconfig.Config{EmailProvider: "stub"}, nil, logger)
	assert.IsType(t, &notify.StubEmailSender{}, sender)
}
