// Package mediastore persists bookmark media (og images, favicons) in
// S3-compatible object storage, addressed by deterministic per-user,
// per-URL keys.
package mediastore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"mindcave/internal/urlkey"
	"mindcave/pkg/logging"
)

// Config holds configuration for the media store.
type Config struct {
	Bucket    string
	Region    string // default: us-east-1
	Endpoint  string // custom endpoint for S3-compatible storage (MinIO, etc.)
	PublicURL string // base URL media is served from; defaults to endpoint/bucket
	AccessKey string // optional, uses the default credential chain if empty
	SecretKey string
}

// Store wraps an S3 client with the bookmark media key scheme.
type Store struct {
	client *s3.Client
	config Config
	logger logging.Logger
}

// New creates a media store. Custom endpoints switch the client to
// path-style addressing, which MinIO and most S3 compatibles require.
func New(cfg Config, logger logging.Logger) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("media bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	logger.WithFields(logging.Fields{
		"bucket":   cfg.Bucket,
		"region":   cfg.Region,
		"endpoint": cfg.Endpoint,
	}).Info("Media store initialized")

	return &Store{
		client: s3.NewFromConfig(awsCfg, s3Opts...),
		config: cfg,
		logger: logger,
	}, nil
}

// Upload writes (or overwrites) the media object for (userID, rawURL,
// kind) and returns its public URL.
func (s *Store) Upload(ctx context.Context, userID, rawURL string, kind urlkey.Kind, ext, contentType string, body io.Reader) (string, error) {
	key, err := urlkey.MediaPath(userID, rawURL, kind, ext)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}

	s.logger.WithFields(logging.Fields{
		"bucket": s.config.Bucket,
		"key":    key,
		"kind":   string(kind),
	}).Info("Uploaded media object")

	return s.PublicURL(key), nil
}

// Delete removes the media object for (userID, rawURL, kind). Deleting
// an absent object is not an error.
func (s *Store) Delete(ctx context.Context, userID, rawURL string, kind urlkey.Kind, ext string) error {
	key, err := urlkey.MediaPath(userID, rawURL, kind, ext)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	s.logger.WithFields(logging.Fields{
		"bucket": s.config.Bucket,
		"key":    key,
	}).Info("Deleted media object")

	return nil
}

// Exists reports whether any object is stored for (userID, rawURL, kind),
// regardless of extension. Existence is checked by listing the key stem.
func (s *Store) Exists(ctx context.Context, userID, rawURL string, kind urlkey.Kind) (bool, string, error) {
	mediaKey, err := urlkey.MediaKey(rawURL)
	if err != nil {
		return false, "", err
	}
	stem := fmt.Sprintf("%s/%s/%s", userID, kind, mediaKey)

	keys, err := s.listPrefix(ctx, stem)
	if err != nil {
		return false, "", err
	}
	if len(keys) == 0 {
		return false, "", nil
	}
	return true, keys[0], nil
}

// ListUserKind returns all stored object keys of one kind for a user.
func (s *Store) ListUserKind(ctx context.Context, userID string, kind urlkey.Kind) ([]string, error) {
	return s.listPrefix(ctx, fmt.Sprintf("%s/%s/", userID, kind))
}

func (s *Store) listPrefix(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.config.Bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list media objects: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}

// PublicURL returns the externally reachable URL of a stored key.
func (s *Store) PublicURL(key string) string {
	if s.config.PublicURL != "" {
		return strings.TrimSuffix(s.config.PublicURL, "/") + "/" + key
	}
	if s.config.Endpoint != "" {
		return strings.TrimSuffix(s.config.Endpoint, "/") + "/" + s.config.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.Bucket, s.config.Region, key)
}
