package coupon

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ObjectGetter is the part of the S3 client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ ObjectGetter = (*s3.Client)(nil)

// bucketLoader reads coupon files stored as objects in one bucket.
type bucketLoader struct {
	objects ObjectGetter
	bucket  string
	logger  zerolog.Logger
}

// NewS3Loader builds an S3 client for region from the default AWS credential chain.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return NewBucketLoader(s3.NewFromConfig(awsCfg), bucket, logger), nil
}

// NewBucketLoader reads coupon files from bucket through objects.
func NewBucketLoader(objects ObjectGetter, bucket string, logger zerolog.Logger) Loader {
	return &bucketLoader{
		objects: objects,
		bucket:  bucket,
		logger:  logger.With().Str("component", "coupon-s3").Str("bucket", bucket).Logger(),
	}
}

// Load treats key as the full object key.
func (l *bucketLoader) Load(ctx context.Context, key string) (Set, error) {
	log := l.logger.With().Str("key", key).Logger()

	obj, err := l.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch coupon object")
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", l.bucket, key, err)
	}
	defer obj.Body.Close()

	set, err := readGzipCSV(ctx, obj.Body)
	if err != nil {
		log.Error().Err(err).Msg("invalid coupon object")
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", l.bucket, key, err)
	}

	log.Info().Int("coupons_loaded", set.Size()).Msg("coupon object loaded")
	return set, nil
}

// fallbackLoader prefers the remote copy of a file and falls back to disk.
type fallbackLoader struct {
	remote Loader
	local  Loader
	prefix string
	logger zerolog.Logger
}

// NewFallbackLoader tries remote under prefix first, then local with the bare name.
// A nil remote reads only from local.
func NewFallbackLoader(remote, local Loader, prefix string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		remote: remote,
		local:  local,
		prefix: prefix,
		logger: logger.With().Str("component", "coupon-fallback").Logger(),
	}
}

func (l *fallbackLoader) Load(ctx context.Context, name string) (Set, error) {
	if l.remote != nil {
		key := path.Join(l.prefix, name)
		set, err := l.remote.Load(ctx, key)
		if err == nil {
			return set, nil
		}
		l.logger.Warn().Err(err).Str("key", key).Msg("remote coupon file unavailable, reading local copy")
	}
	return l.local.Load(ctx, name)
}
