package attachments_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"workshop/internal/adapters/out/attachments"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T) (*attachments.LocalStore, string) {
		dir := t.TempDir()
		s, err := attachments.NewLocalStore(dir, "http://localhost:8080/attachments/")
		require.NoError(t, err)
		return s, dir
	}

	t.Run("should write a data uri under its category and return a url", func(t *testing.T) {
		s, dir := newStore(t)
		payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("signature"))

		ref, err := s.Store(ctx, payload, ports.CategorySignatures)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "http://localhost:8080/attachments/signatures/"))
		assert.True(t, strings.HasSuffix(ref, ".png"))

		name := strings.TrimPrefix(ref, "http://localhost:8080/attachments/")
		content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		require.NoError(t, err)
		assert.Equal(t, []byte("signature"), content)
	})

	t.Run("should return existing references unchanged", func(t *testing.T) {
		s, _ := newStore(t)

		ref, err := s.Store(ctx, "https://cdn.example.com/p.jpg", ports.CategoryDeliveryPhotos)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/p.jpg", ref)

		usage, err := s.Usage(ctx)
		require.NoError(t, err)
		assert.Zero(t, usage.Objects)
	})

	t.Run("should store retries under distinct names", func(t *testing.T) {
		s, _ := newStore(t)
		payload := base64.StdEncoding.EncodeToString([]byte("photo"))

		first, err := s.Store(ctx, payload, ports.CategoryOrderPhotos)
		require.NoError(t, err)
		second, err := s.Store(ctx, payload, ports.CategoryOrderPhotos)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)

		usage, err := s.Usage(ctx)
		require.NoError(t, err)
		assert.Equal(t, ports.StorageUsage{Bytes: 10, Objects: 2}, usage)
	})

	t.Run("should reject an undecodable payload", func(t *testing.T) {
		s, _ := newStore(t)

		_, err := s.Store(ctx, "%%%", ports.CategorySignatures)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require a directory", func(t *testing.T) {
		_, err := attachments.NewLocalStore(" ", "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
