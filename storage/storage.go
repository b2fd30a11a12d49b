package storage

import (
	"context"
	"io"

	"restaurant-api/models"
)

// File is a single uploaded file to be pushed to the object store.
type File struct {
	Name string
	Body io.Reader
}

// ObjectStore uploads and deletes image blobs against an external object
// store. Implementations return one descriptor per uploaded file, in input
// order.
type ObjectStore interface {
	Upload(ctx context.Context, files []File) ([]models.Image, error)
	Delete(ctx context.Context, images []models.Image) error
}
