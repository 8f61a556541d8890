package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"ghprofile/internal/app/profile"
	"ghprofile/internal/pkg/logx"
)

// objectGetter is the subset of *s3.Client used to read the slot object.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// objectUploader is the subset of *manager.Uploader used to write the slot object.
type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store keeps the profile record as one JSON object in an S3-compatible bucket.
type S3Store struct {
	bucket   string
	key      string
	objects  objectGetter
	uploader objectUploader
	logger   zerolog.Logger
}

// NewS3Store connects to the S3-compatible endpoint in cfg using static credentials.
// The object key is cfg.S3Prefix + cfg.Slot + ".json".
func NewS3Store(ctx context.Context, cfg ServiceConfig) (*S3Store, error) {
	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return newS3Store(client, manager.NewUploader(client), cfg.S3BucketName, cfg.S3Prefix+cfg.Slot+".json"), nil
}

func newS3Store(objects objectGetter, uploader objectUploader, bucket, key string) *S3Store {
	return &S3Store{
		bucket:   bucket,
		key:      key,
		objects:  objects,
		uploader: uploader,
		logger: logx.Component("S3Store").With().
			Str("bucket", bucket).
			Str("key", key).
			Logger(),
	}
}

// Load fetches the slot object. A missing object, a request error, or malformed JSON yields the empty record.
func (s *S3Store) Load(ctx context.Context) profile.UserProfile {
	out, err := s.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
			s.logger.Debug().Msg("No stored profile found.")
			return profile.UserProfile{}
		}
		s.logger.Warn().Err(err).Msg("Failed to fetch stored profile. Falling back to empty profile.")
		return profile.UserProfile{}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read stored profile. Falling back to empty profile.")
		return profile.UserProfile{}
	}

	return decodeProfile(data, s.logger)
}

// Save uploads p, replacing the slot object.
func (s *S3Store) Save(ctx context.Context, p profile.UserProfile) error {
	data, err := encodeProfile(p)
	if err != nil {
		return err
	}

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload profile to s3://%s/%s: %w", s.bucket, s.key, err)
	}

	return nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *S3Store) Close() error {
	return nil
}
