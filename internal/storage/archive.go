// Package storage archives original exam PDFs so single pages can be served
// later.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/examlens/config"
)

var ErrNotFound = errors.New("archived object not found")

// Archive stores opaque blobs by key.
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

func NewArchive(cfg *config.Config) (Archive, error) {
	switch cfg.Storage.Type {
	case "local":
		return NewLocalArchive(cfg.Storage.LocalPath), nil
	case "minio":
		return NewMinioArchive(context.Background(), cfg.Storage)
	}
	return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
}

// PDFKey is the archive key for an upload's original PDF.
func PDFKey(uploadID string) string {
	return "uploads/" + uploadID + ".pdf"
}
