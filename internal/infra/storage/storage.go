package storage

import "context"

// Uploader stores a creative image with the object-storage provider and
// returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, image []byte) (string, error)
}
