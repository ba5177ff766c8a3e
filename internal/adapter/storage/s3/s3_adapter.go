package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sachin24864/RealEstate-Website/internal/config"
	"github.com/sachin24864/RealEstate-Website/internal/port/storage"
	"go.uber.org/zap"
)

// S3Storage keeps assets in an S3-compatible bucket under the object key
// "<kind>/<name>". Public paths are the same as for the disk store, so
// records do not change when the driver does.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*S3Storage, error) {
	logger.Info("Initializing S3 storage",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
		zap.Bool("use_ssl", cfg.UseSSL),
	)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exists, errBucketExists := client.BucketExists(ctx, cfg.Bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", cfg.Bucket, err, errBucketExists)
		}
		logger.Info("S3 bucket already exists", zap.String("bucket", cfg.Bucket))
	} else {
		logger.Info("S3 bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &S3Storage{
		client: client,
		bucket: cfg.Bucket,
		logger: logger.Named("S3Storage"),
	}, nil
}

func (s *S3Storage) Save(ctx context.Context, kind storage.Kind, name string, body io.Reader, size int64, contentType string) (string, error) {
	publicPath := storage.PublicPath(kind, name)
	key, err := storage.ObjectKey(publicPath)
	if err != nil {
		return "", err
	}

	info, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("bucket", s.bucket), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", key, s.bucket, err)
	}

	s.logger.Debug("Object uploaded", zap.String("key", info.Key), zap.String("etag", info.ETag), zap.Int64("size", info.Size))
	return publicPath, nil
}

func (s *S3Storage) Remove(ctx context.Context, publicPath string) error {
	key, err := storage.ObjectKey(publicPath)
	if err != nil {
		return err
	}

	// RemoveObject succeeds for absent keys, so check first to report ErrNotFound.
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to stat object %s: %w", key, err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) Open(ctx context.Context, publicPath string) (*storage.Object, error) {
	key, err := storage.ObjectKey(publicPath)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isNoSuchKey(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	return &storage.Object{
		Body:        obj,
		Size:        stat.Size,
		ModTime:     stat.LastModified,
		ContentType: stat.ContentType,
	}, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
