// Package video mints playback URLs on the external video storage.
package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/reelgate-inc/reelgate/internal/shared/config"
	"github.com/reelgate-inc/reelgate/internal/shared/logger"
)

// maxPresignExpiry is the SigV4 upper bound for presigned URLs.
const maxPresignExpiry = 7 * 24 * time.Hour

var ErrInvalidExpiry = errors.New("playback url expiry out of range")

// S3Signer presigns GET requests for video objects in an S3-compatible bucket.
// Object key format: {key_prefix}{content_id}{key_suffix}
type S3Signer struct {
	presigner *s3.PresignClient
	bucket    string
	keyPrefix string
	keySuffix string
	logger    logger.Interface
}

func NewS3Signer(ctx context.Context, cfg config.VideoConfig, logger logger.Interface) (*S3Signer, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("video bucket is not configured")
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Infow("video url signer initialized",
		"bucket", cfg.Bucket,
		"endpoint", cfg.Endpoint,
	)

	return &S3Signer{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
		keySuffix: cfg.KeySuffix,
		logger:    logger,
	}, nil
}

func (s *S3Signer) objectKey(contentID string) string {
	return s.keyPrefix + contentID + s.keySuffix
}

// MintPlaybackURL returns a presigned GET URL valid for expiry.
func (s *S3Signer) MintPlaybackURL(ctx context.Context, contentID string, expiry time.Duration) (string, error) {
	if expiry <= 0 || expiry > maxPresignExpiry {
		return "", fmt.Errorf("%w: %s", ErrInvalidExpiry, expiry)
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(contentID)),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		s.logger.Errorw("failed to presign playback url",
			"content_id", contentID,
			"error", err,
		)
		return "", fmt.Errorf("failed to presign playback url: %w", err)
	}

	return req.URL, nil
}
