package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadDownload(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	content := "Minimum time: 12.5 ms\n"
	require.NoError(t, s.Upload(ctx, "bench/shared/report.txt", strings.NewReader(content)))

	rc, err := s.Download(ctx, "bench/shared/report.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestLocalStorage_Exists(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "missing.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Upload(ctx, "present.txt", strings.NewReader("x")))
	exists, err = s.Exists(ctx, "present.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStorage_Delete(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "doomed.txt", strings.NewReader("x")))
	require.NoError(t, s.Delete(ctx, "doomed.txt"))

	exists, err := s.Exists(ctx, "doomed.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is not an error.
	require.NoError(t, s.Delete(ctx, "doomed.txt"))
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Upload(ctx, "x.txt", strings.NewReader("x")))
	_, err := s.Download(ctx, "x.txt")
	assert.Error(t, err)
}
