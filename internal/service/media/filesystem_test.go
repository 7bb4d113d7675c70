package media_service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsefeed-backend/internal/custom_errors"
	"pulsefeed-backend/internal/logger"
)

func TestFilesystemStorage_Save(t *testing.T) {
	log := logger.New("test")

	t.Run("writes the file and returns its url", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewFilesystemStorage(dir, "/media/", log)
		require.NoError(t, err)

		url, err := storage.Save(context.Background(), "photo.JPG", strings.NewReader("image bytes"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "/media/"))
		assert.True(t, strings.HasSuffix(url, ".jpg"))

		data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
		require.NoError(t, err)
		assert.Equal(t, "image bytes", string(data))
	})

	t.Run("distinct names for the same source file", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewFilesystemStorage(dir, "/media", log)
		require.NoError(t, err)

		first, err := storage.Save(context.Background(), "photo.png", strings.NewReader("a"))
		require.NoError(t, err)
		second, err := storage.Save(context.Background(), "photo.png", strings.NewReader("b"))
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("rejects unknown extensions", func(t *testing.T) {
		dir := t.TempDir()
		storage, err := NewFilesystemStorage(dir, "/media", log)
		require.NoError(t, err)

		_, err = storage.Save(context.Background(), "script.sh", strings.NewReader("#!/bin/sh"))
		assert.ErrorIs(t, err, custom_errors.ErrUnsupportedMediaType)
	})

	t.Run("creates the directory on init", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "media")
		_, err := NewFilesystemStorage(dir, "/media", log)
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}
