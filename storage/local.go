package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes objects under a directory served at /uploads.
// Default driver for development and tests.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	fullPath := filepath.Join(s.Dir, filepath.FromSlash(path))

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, data, 0644)
}

func (s *LocalStorage) Download(ctx context.Context, path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, filepath.FromSlash(path)))
}

func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.Dir, filepath.FromSlash(path)))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *LocalStorage) PublicURL(path string) string {
	if path == "" {
		return ""
	}
	return s.BaseURL + "/uploads/" + path
}
