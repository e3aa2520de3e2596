package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"songboard/internal/config"
)

type Storage interface {
	UploadImage(ctx context.Context, userID string, data []byte, extension string) (string, error)
	DeleteImageByURL(ctx context.Context, imageURL string) error
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object storage: %w", err)
	}

	return &MinIOClient{
		client: client,
		cfg:    cfg.MinIO,
	}, nil
}

// UploadImage stores a profile image under a fresh key and returns its public URL.
func (m *MinIOClient) UploadImage(ctx context.Context, userID string, data []byte, extension string) (string, error) {
	contentType := mime.TypeByExtension("." + extension)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("images/%s.%s", uuid.New().String(), extension)

	_, err := m.client.PutObject(ctx, m.cfg.BucketName, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"user-id":     userID,
				"uploaded-at": time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	scheme := "http"
	if m.cfg.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", scheme, m.cfg.Endpoint, m.cfg.BucketName, objectName), nil
}

// DeleteImageByURL removes the object a previously returned URL points at.
func (m *MinIOClient) DeleteImageByURL(ctx context.Context, imageURL string) error {
	marker := "/" + m.cfg.BucketName + "/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return fmt.Errorf("image URL %q does not belong to bucket %s", imageURL, m.cfg.BucketName)
	}
	objectName := imageURL[idx+len(marker):]

	err := m.client.RemoveObject(ctx, m.cfg.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}

	return nil
}
