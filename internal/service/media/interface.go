package media_service

import (
	"context"
	"io"
)

//go:generate mockery --name Storage --dir . --output ../../../mocks --outpkg mocks --with-expecter --filename MediaStorage.go
type Storage interface {
	// Save persists the upload under a generated name and returns the
	// URL clients use in post image payloads.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}
