package datauri_test

import (
	"encoding/base64"
	"testing"

	"workshop/internal/pkg/datauri"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestDecode(t *testing.T) {
	t.Run("should decode a data uri", func(t *testing.T) {
		d, err := datauri.Decode("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg")))
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", d.MediaType)
		assert.Equal(t, []byte("jpeg"), d.Bytes)
		assert.Equal(t, ".jpg", d.Extension())
	})

	t.Run("should sniff the type of bare base64", func(t *testing.T) {
		d, err := datauri.Decode(base64.StdEncoding.EncodeToString(pngHeader))
		require.NoError(t, err)
		assert.Equal(t, "image/png", d.MediaType)
		assert.Equal(t, ".png", d.Extension())
	})

	t.Run("should accept unpadded base64", func(t *testing.T) {
		d, err := datauri.Decode(base64.RawStdEncoding.EncodeToString([]byte("ab")))
		require.NoError(t, err)
		assert.Equal(t, []byte("ab"), d.Bytes)
	})

	t.Run("should reject blank, malformed and non-base64 payloads", func(t *testing.T) {
		_, err := datauri.Decode("   ")
		assert.ErrorIs(t, err, datauri.ErrEmptyPayload)

		_, err = datauri.Decode("data:image/png;base64")
		assert.Error(t, err)

		_, err = datauri.Decode("data:text/plain,hello")
		assert.Error(t, err)

		_, err = datauri.Decode("not base64 at all!")
		assert.Error(t, err)
	})
}

func TestIsReference(t *testing.T) {
	assert.True(t, datauri.IsReference("https://cdn/x.png"))
	assert.True(t, datauri.IsReference(" HTTP://cdn/x.png"))
	assert.False(t, datauri.IsReference("data:image/png;base64,AAAA"))
}
