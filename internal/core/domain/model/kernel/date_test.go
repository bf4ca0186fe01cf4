package kernel_test

import (
	"testing"
	"time"

	"workshop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("should parse calendar form", func(t *testing.T) {
		d, err := kernel.ParseDate("2024-03-09")

		require.NoError(t, err)
		assert.Equal(t, "2024-03-09", d.String())
	})

	t.Run("should drop time of day from timestamps", func(t *testing.T) {
		d, err := kernel.ParseDate("2024-03-09T18:45:00Z")

		require.NoError(t, err)
		assert.True(t, d.Equal(kernel.NewDate(2024, time.March, 9)))
	})

	t.Run("should reject other formats", func(t *testing.T) {
		_, err := kernel.ParseDate("09/03/2024")

		require.Error(t, err)
	})
}

func TestDateOf(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	instant := time.Date(2024, time.March, 9, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-09", kernel.DateOf(instant, time.UTC).String())
	assert.Equal(t, "2024-03-10", kernel.DateOf(instant, kolkata).String())
}

func TestDate_Before(t *testing.T) {
	today := kernel.NewDate(2024, time.March, 9)

	assert.True(t, today.AddDays(-1).Before(today))
	assert.False(t, today.Before(today))
	assert.False(t, today.AddDays(1).Before(today))
}
