// Package blob keeps profile images in an S3-compatible object store.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/medicocare/hospital-portal/internal/core/domain"
	"github.com/medicocare/hospital-portal/internal/core/ports"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ImageStore implements ports.ProfileImageStore on MinIO. Images are stored
// decoded, one object per user, and turned back into data URLs on read.
type ImageStore struct {
	client *minio.Client
	bucket string
}

func NewImageStore(cfg Config) (*ImageStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &ImageStore{client: client, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the image bucket on first start.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *ImageStore) Put(ctx context.Context, userID, dataURL string) error {
	contentType, data, err := domain.DecodeImageDataURL(dataURL)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, objectName(userID), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put profile image: %w", err)
	}
	return nil
}

func (s *ImageStore) Get(ctx context.Context, userID string) (string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName(userID), minio.GetObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("get profile image: %w", err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		if isNotFound(err) {
			return "", ports.ErrImageNotFound
		}
		return "", fmt.Errorf("stat profile image: %w", err)
	}
	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("read profile image: %w", err)
	}
	return domain.EncodeImageDataURL(info.ContentType, data), nil
}

// Delete removes the user's image. A missing object is not an error.
func (s *ImageStore) Delete(ctx context.Context, userID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectName(userID), minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("delete profile image: %w", err)
	}
	return nil
}

// Ping reports whether the bucket is reachable.
func (s *ImageStore) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	return err
}

func objectName(userID string) string {
	return domain.ProfileImageKey(userID)
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.StatusCode == http.StatusNotFound || resp.Code == "NoSuchKey"
}
