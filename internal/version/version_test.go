package version_test

import (
	"bytes"
	"testing"

	"workshop/internal/version"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFull(t *testing.T) {
	t.Run("should include version commit and build time", func(t *testing.T) {
		full := version.Full()
		assert.Contains(t, full, version.Version)
		assert.Contains(t, full, version.Commit)
		assert.Contains(t, full, version.BuildTime)
	})
}

func TestAttachCobraVersionCommand(t *testing.T) {
	t.Run("should print the full version", func(t *testing.T) {
		root := &cobra.Command{Use: "workshop"}
		version.AttachCobraVersionCommand(root)

		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs([]string{"version"})
		require.NoError(t, root.Execute())

		assert.Equal(t, version.Full()+"\n", out.String())
	})
}
