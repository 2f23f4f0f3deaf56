package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

type LocalArchive struct {
	root string
}

func NewLocalArchive(root string) *LocalArchive {
	return &LocalArchive{root: root}
}

func (a *LocalArchive) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if strings.Contains(key, "..") || clean == "/" {
		return "", fmt.Errorf("invalid archive key %q", key)
	}
	return filepath.Join(a.root, clean), nil
}

func (a *LocalArchive) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	dst, err := a.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", err
	}
	return key, nil
}

func (a *LocalArchive) Get(ctx context.Context, key string) ([]byte, error) {
	src, err := a.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (a *LocalArchive) Delete(ctx context.Context, key string) error {
	dst, err := a.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
