package media_service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// FilesystemStorage writes uploads under a local directory served as
// static files.
type FilesystemStorage struct {
	dir     string
	baseURL string
	log     *logger.Logger
}

func NewFilesystemStorage(dir, baseURL string, log *logger.Logger) (*FilesystemStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir: %w", err)
	}
	return &FilesystemStorage{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log,
	}, nil
}

func (s *FilesystemStorage) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", custom_errors.ErrUnsupportedMediaType
	}

	name := uuid.New().String() + ext
	target := filepath.Join(s.dir, name)

	f, err := os.Create(target)
	if err != nil {
		s.log.Error("Failed to create media file", slog.String("path", target), slog.String("error", err.Error()))
		return "", fmt.Errorf("creating media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		s.log.Error("Failed to write media file", slog.String("path", target), slog.String("error", err.Error()))
		os.Remove(target)
		return "", fmt.Errorf("writing media file: %w", err)
	}

	return path.Join(s.baseURL, name), nil
}
