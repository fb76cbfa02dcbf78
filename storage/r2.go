// Package storage relays uploaded files to Cloudflare R2 through its S3 API.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/autotrack/vehicle-records/config"
	"go.uber.org/zap"
)

// Uploader stores objects and reports where they are publicly served
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// R2Uploader implements Uploader against an R2 bucket
type R2Uploader struct {
	client     *s3.Client
	bucket     string
	publicBase string
	logger     *zap.Logger
}

// NewR2Uploader builds an S3 client for the configured R2 endpoint.
// optFns are applied to the client options after the endpoint settings.
func NewR2Uploader(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger, optFns ...func(*s3.Options)) (*R2Uploader, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("r2 storage is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	opts := append([]func(*s3.Options){
		func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		},
	}, optFns...)

	return &R2Uploader{
		client:     s3.NewFromConfig(awsCfg, opts...),
		bucket:     cfg.BucketName,
		publicBase: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:     logger,
	}, nil
}

// Upload puts data under key
func (u *R2Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	u.logger.Info("object uploaded",
		zap.String("bucket", u.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)))
	return nil
}

// PublicURL returns the public address of key
func (u *R2Uploader) PublicURL(key string) string {
	return u.publicBase + "/" + strings.TrimPrefix(key, "/")
}
