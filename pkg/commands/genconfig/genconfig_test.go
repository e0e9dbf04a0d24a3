package genconfig

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/scaffold/pkg/config"
	"github.com/arthur-debert/scaffold/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenConfig(t *testing.T) {
	t.Run("output to stdout", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		result, err := GenConfig(GenConfigOptions{
			WorkDir:    env.BaseDir,
			FileSystem: env.FS,
		})

		require.NoError(t, err)
		assert.Empty(t, result.FilesWritten)
		assert.Contains(t, result.ConfigContent, "[output]")
		assert.Contains(t, result.ConfigContent, "[execution]")

		for _, line := range strings.Split(result.ConfigContent, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
				(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
				continue
			}
			assert.Fail(t, "Found uncommented configuration line", "Line: %s", line)
		}

		assert.False(t, env.Exists(".scaffold.toml"))
	})

	t.Run("write project config", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

		result, err := GenConfig(GenConfigOptions{
			WorkDir:    env.BaseDir,
			Write:      true,
			FileSystem: env.FS,
		})

		require.NoError(t, err)
		require.Len(t, result.FilesWritten, 1)
		assert.Equal(t, filepath.Join(env.BaseDir, ".scaffold.toml"), result.FilesWritten[0])
		assert.Equal(t, config.GenerateConfigContent(), env.ReadFile(".scaffold.toml"))
	})

	t.Run("existing file is kept", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		env.WriteFile(".scaffold.toml", "[output]\nbase_dir = \"web\"\n")

		result, err := GenConfig(GenConfigOptions{
			WorkDir:    env.BaseDir,
			Write:      true,
			FileSystem: env.FS,
		})

		require.NoError(t, err)
		assert.Empty(t, result.FilesWritten)
		assert.Equal(t, "[output]\nbase_dir = \"web\"\n", env.ReadFile(".scaffold.toml"))
	})
}
