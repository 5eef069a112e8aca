package mainconfig

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/wolfman30/physio-clinic/internal/app/bootstrap"
	appconfig "github.com/wolfman30/physio-clinic/internal/config"
	"github.com/wolfman30/physio-clinic/internal/notify"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

// LoadAWSConfig centralizes AWS SDK initialization so both binaries share the
// same LocalStack/production wiring.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, err
	}

	if endpoint := cfg.AWSEndpointOverride; endpoint != "" {
		awsCfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
			func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
				switch service {
				case s3.ServiceID, dynamodb.ServiceID, sesv2.ServiceID:
					return aws.Endpoint{
						URL:               endpoint,
						PartitionID:       "aws",
						SigningRegion:     cfg.AWSRegion,
						HostnameImmutable: true,
					}, nil
				default:
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				}
			},
		)
	}

	return awsCfg, nil
}

// usesAWS reports whether any configured backend needs an AWS client.
func usesAWS(cfg *appconfig.Config) bool {
	switch {
	case cfg.StorageBackend == "s3", cfg.StorageBackend == "dynamodb":
		return true
	case cfg.EmailProvider == "ses":
		return true
	}
	return false
}

// Runtime is the set of connected clients shared by the API server and
// physioctl.
type Runtime struct {
	Backends bootstrap.Backends
	SES      notify.SESAPI
}

// Close releases pooled connections.
func (r *Runtime) Close() {
	if r.Backends.Redis != nil {
		_ = r.Backends.Redis.Close()
	}
	if r.Backends.Postgres != nil {
		r.Backends.Postgres.Close()
	}
}

// Connect opens the clients the configuration asks for. AWS configuration is
// only loaded when an S3, DynamoDB or SES backend is selected.
func Connect(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*Runtime, error) {
	rt := &Runtime{}
	rt.Backends.Redis = bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if cfg.StorageBackend == "postgres" {
		rt.Backends.Postgres = bootstrap.BuildPostgresPool(ctx, cfg.DatabaseURL, logger)
	}

	if !usesAWS(cfg) {
		return rt, nil
	}
	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Backends.S3 = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.AWSEndpointOverride != ""
	})
	rt.Backends.DynamoDB = dynamodb.NewFromConfig(awsCfg)
	rt.SES = sesv2.NewFromConfig(awsCfg)
	return rt, nil
}
