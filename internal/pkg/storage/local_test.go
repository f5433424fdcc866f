package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(base, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	key, err := s.Upload(ctx, strings.NewReader("hello"), "leave/u1/note.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "leave/u1/note.pdf", key)

	data, err := os.ReadFile(filepath.Join(base, "leave", "u1", "note.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	url, err := s.GetURL(ctx, key, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/leave/u1/note.pdf", url)

	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(base, "leave", "u1", "note.pdf"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	base := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(base, "http://localhost/uploads")
	require.NoError(t, err)

	for _, key := range []string{"../escape.txt", "a/../../escape.txt", ".."} {
		_, err := s.Upload(ctx, strings.NewReader("x"), key, "text/plain")
		assert.ErrorIs(t, err, ErrInvalidPath, key)
	}

	// a sibling directory sharing the prefix is outside the root too
	_, err = s.Upload(ctx, strings.NewReader("x"), "../uploads-other/x.txt", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
