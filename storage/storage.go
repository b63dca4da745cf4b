package storage

import (
	"context"
	"fmt"

	"lms/config"
)

// Storage is the object store the certificate workflow writes to. The
// service itself is external; this is the thin client surface the app needs.
type Storage interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	Download(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	PublicURL(path string) string
}

// New returns the storage driver selected by STORAGE_DRIVER
func New() (Storage, error) {
	switch config.AppConfig.StorageDriver {
	case "oss":
		return NewOSSStorage(
			config.AppConfig.OSSEndpoint,
			config.AppConfig.OSSKeyID,
			config.AppConfig.OSSKeySecret,
			config.AppConfig.OSSBucket,
		)
	case "local":
		return NewLocalStorage(config.AppConfig.LocalStorageDir, config.AppConfig.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", config.AppConfig.StorageDriver)
	}
}
