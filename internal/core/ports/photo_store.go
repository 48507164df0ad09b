package ports

import (
	"context"
	"io"
)

// PhotoStore persists uploaded questionnaire photos and returns their key.
type PhotoStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	// Delete removes an object that no record ended up referencing.
	Delete(ctx context.Context, key string) error
}
