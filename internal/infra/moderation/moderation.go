package moderation

import "context"

// Classifier decides whether a creative image may be served. Implementations
// must fail closed: when in doubt (or on provider errors) the image is
// rejected.
type Classifier interface {
	IsSafe(ctx context.Context, image []byte, mimeType string) (bool, error)
}
