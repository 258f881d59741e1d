// Package storage uploads wine and avatar images to an S3-compatible bucket
// and derives their public URLs. Uploads that are orphaned by a later form
// failure are not cleaned up.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/configs"
)

// MaxImageBytes is the upload size cap, checked before any bytes are sent.
const MaxImageBytes = 5 << 20

var (
	ErrNotConfigured = errors.New("image storage not configured")
	ErrNotImage      = errors.New("content type is not an image")
	ErrTooLarge      = errors.New("image exceeds maximum size")
)

type Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

func Open(ctx context.Context, conf *configs.Config, logger *zap.Logger) (*Store, error) {
	if conf.Storage.Bucket == "" {
		return nil, ErrNotConfigured
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(conf.Storage.Region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if conf.Storage.PathStyle {
			options.UsePathStyle = true
		}

		if conf.Storage.Endpoint != "" {
			options.BaseEndpoint = aws.String(conf.Storage.Endpoint)
		}
	})

	publicBaseURL := conf.Storage.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", conf.Storage.Bucket, conf.Storage.Region)
	}

	return &Store{
		client:        client,
		bucket:        conf.Storage.Bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// ValidateImage rejects non-image content types and oversized bodies before
// any upload happens.
func ValidateImage(contentType string, size int64) error {
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotImage
	}

	if size > MaxImageBytes {
		return ErrTooLarge
	}

	return nil
}

// UploadImage stores the image bytes under key and returns the public URL.
// Storing and URL derivation are two steps; a caller that fails after this
// returns leaves the object behind.
func (s *Store) UploadImage(ctx context.Context, key string, contentType string, body io.Reader, size int64) (string, error) {
	if err := ValidateImage(contentType, size); err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error("image upload failed", zap.String("key", key), zap.Error(err))

		return "", err
	}

	return s.PublicURL(key), nil
}

// PublicURL derives the public URL for a stored key.
func (s *Store) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}
