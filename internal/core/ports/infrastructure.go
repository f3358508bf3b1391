package ports

import (
	"context"
	"io"
)

// TokenIssuer signs access tokens carrying the identity at issuance time.
type TokenIssuer interface {
	Issue(id int64, username, role string) (string, error)
}

// IdempotencyStore remembers which tweet a client-supplied key produced.
type IdempotencyStore interface {
	// Claim reserves key. When the key was already completed it returns the
	// recorded id and claimed=false. When another request holds the key it
	// returns domain.ErrRequestInProgress.
	Claim(ctx context.Context, key string) (existingID int64, claimed bool, err error)
	Complete(ctx context.Context, key string, id int64) error
	Release(ctx context.Context, key string) error
}

// ImageStore saves uploaded images and returns the public URL.
type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// ImageRemover deletes a previously saved image by its public URL. URLs the
// store does not own are ignored.
type ImageRemover interface {
	Remove(ctx context.Context, url string) error
}

// CleanupQueue schedules removal of image files that no tweet references any more.
type CleanupQueue interface {
	Enqueue(urls []string)
}
