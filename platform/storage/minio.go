package storage

import (
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/Amritansu-Adi/klantroef/platform/config"
)

// MediaStorage holds uploaded media files in a single MinIO bucket, keyed by
// asset id.
type MediaStorage struct {
	client *minio.Client
	bucket string
}

func Connect(cfg *config.Config) (*MediaStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	s := &MediaStorage{client: client, bucket: cfg.MinioBucket}
	s.ensureBucket()
	return s, nil
}

func (s *MediaStorage) ensureBucket() {
	ctx := context.Background()
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		log.Warn().Err(err).Str("bucket", s.bucket).Msg("could not check bucket")
		return
	}
	if exists {
		return
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		log.Warn().Err(err).Str("bucket", s.bucket).Msg("could not create bucket")
		return
	}
	log.Info().Str("bucket", s.bucket).Msg("created media bucket")
}

func (s *MediaStorage) UploadFile(objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(context.Background(), s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// PresignedURL returns a time-limited direct download URL for an uploaded
// object.
func (s *MediaStorage) PresignedURL(objectName string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(context.Background(), s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (s *MediaStorage) FileInfo(objectName string) (minio.ObjectInfo, error) {
	return s.client.StatObject(context.Background(), s.bucket, objectName, minio.StatObjectOptions{})
}
