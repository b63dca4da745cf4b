package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStorage stores objects in an Aliyun OSS bucket
type OSSStorage struct {
	Endpoint   string
	BucketName string
	Bucket     *oss.Bucket
}

func NewOSSStorage(endpoint, keyID, keySecret, bucketName string) (*OSSStorage, error) {
	client, err := oss.New(endpoint, keyID, keySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSStorage{Endpoint: endpoint, BucketName: bucketName, Bucket: bucket}, nil
}

func (s *OSSStorage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
	}
	return s.Bucket.PutObject(path, bytes.NewReader(data), opts...)
}

func (s *OSSStorage) Download(ctx context.Context, path string) ([]byte, error) {
	body, err := s.Bucket.GetObject(path, oss.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (s *OSSStorage) Exists(ctx context.Context, path string) (bool, error) {
	return s.Bucket.IsObjectExist(path)
}

func (s *OSSStorage) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, endpoint, path)
}
