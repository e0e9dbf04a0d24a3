package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config source at empty temporary locations
func isolate(t *testing.T) (workDir, userPath string) {
	t.Helper()

	root := t.TempDir()
	workDir = filepath.Join(root, "project")
	require.NoError(t, os.MkdirAll(workDir, 0755))
	userPath = filepath.Join(root, "user", "config.toml")
	return workDir, userPath
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".", cfg.Output.BaseDir)
	assert.Equal(t, "overwrite", cfg.Output.Overwrite)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Equal(t, fs.FileMode(0755), cfg.Permissions.Directory)
	assert.Equal(t, fs.FileMode(0644), cfg.Permissions.File)
	assert.Equal(t, "direct", cfg.Execution.Mode)
	assert.True(t, cfg.Execution.Lock)
	assert.Equal(t, []string{"core"}, cfg.Templates.Default)
	assert.Equal(t, 5, cfg.Logging.MaxSizeMB)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	workDir, userPath := isolate(t)

	cfg, err := LoadWithOptions(LoadOptions{WorkDir: workDir, UserConfigPath: userPath})
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, types.OverwriteReplace, cfg.OverwritePolicy())
	assert.Equal(t, types.ModeDirect, cfg.ExecutionMode())
}

func TestLoad_Layering(t *testing.T) {
	workDir, userPath := isolate(t)

	writeFile(t, userPath, `
[output]
base_dir = "/from/user"
overwrite = "skip"

[templates]
default = ["core", "components"]
`)
	writeFile(t, filepath.Join(workDir, ".scaffold.toml"), `
[output]
base_dir = "/from/project"
`)

	cfg, err := LoadWithOptions(LoadOptions{WorkDir: workDir, UserConfigPath: userPath})
	require.NoError(t, err)

	// Project wins over user, user wins over defaults
	assert.Equal(t, "/from/project", cfg.Output.BaseDir)
	assert.Equal(t, "skip", cfg.Output.Overwrite)
	assert.Equal(t, []string{"core", "components"}, cfg.Templates.Default)
}

func TestLoad_DotEnvAndEnvironment(t *testing.T) {
	workDir, userPath := isolate(t)

	writeFile(t, filepath.Join(workDir, ".env"), `
SCAFFOLD_OUTPUT_BASE_DIR=/from/dotenv
SCAFFOLD_EXECUTION_MODE=transactional
UNRELATED=1
`)
	t.Setenv("SCAFFOLD_EXECUTION_MODE", "direct")
	t.Setenv("SCAFFOLD_LOGGING_MAX_BACKUPS", "9")
	t.Setenv("SCAFFOLD_TEMPLATES_DEFAULT", "core,api")

	cfg, err := LoadWithOptions(LoadOptions{WorkDir: workDir, UserConfigPath: userPath})
	require.NoError(t, err)

	assert.Equal(t, "/from/dotenv", cfg.Output.BaseDir)
	// The real environment wins over .env
	assert.Equal(t, "direct", cfg.Execution.Mode)
	assert.Equal(t, 9, cfg.Logging.MaxBackups)
	assert.Equal(t, []string{"core", "api"}, cfg.Templates.Default)

	// .env must not leak into the process environment
	_, found := os.LookupEnv("UNRELATED")
	assert.False(t, found)
}

func TestLoad_BaseDirEnv(t *testing.T) {
	workDir, userPath := isolate(t)
	t.Setenv("SCAFFOLD_BASE_DIR", "/from/env")

	cfg, err := LoadWithOptions(LoadOptions{WorkDir: workDir, UserConfigPath: userPath})
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Output.BaseDir)
}

func TestLoad_Overrides(t *testing.T) {
	workDir, userPath := isolate(t)
	t.Setenv("SCAFFOLD_OUTPUT_OVERWRITE", "skip")

	cfg, err := LoadWithOptions(LoadOptions{
		WorkDir:        workDir,
		UserConfigPath: userPath,
		Overrides:      map[string]interface{}{"output.overwrite": "error"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.OverwriteError, cfg.OverwritePolicy())
}

func TestLoad_InvalidValues(t *testing.T) {
	workDir, userPath := isolate(t)
	writeFile(t, filepath.Join(workDir, ".scaffold.toml"), `
[output]
overwrite = "sometimes"
`)

	_, err := LoadWithOptions(LoadOptions{WorkDir: workDir, UserConfigPath: userPath})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestLoad_MalformedFile(t *testing.T) {
	workDir, userPath := isolate(t)
	writeFile(t, userPath, "[output\nbase_dir = ")

	_, err := LoadWithOptions(LoadOptions{WorkDir: workDir, UserConfigPath: userPath})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"SCAFFOLD_OUTPUT_BASE_DIR":     "output.base_dir",
		"SCAFFOLD_EXECUTION_MODE":      "execution.mode",
		"SCAFFOLD_LOGGING_MAX_SIZE_MB": "logging.max_size_mb",
		"SCAFFOLD_BASE_DIR":            "output.base_dir",
		"SCAFFOLD_STATE_DIR":           "",
		"SCAFFOLD_CONFIG_DIR":          "",
		"SCAFFOLD_VERBOSE":             "",
	}
	for name, want := range tests {
		assert.Equal(t, want, envKey(name), name)
	}
}

func TestValidate_Permissions(t *testing.T) {
	cfg := Default()
	cfg.Permissions.File = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Permissions.Directory = fs.ModeDir | 0755
	assert.Error(t, cfg.Validate())
}

func TestLoggingOptions(t *testing.T) {
	cfg := Default()
	cfg.Logging.MaxAgeDays = 7

	opts := cfg.LoggingOptions(2)
	assert.Equal(t, 2, opts.Verbosity)
	assert.Equal(t, 7, opts.MaxAgeDays)
	assert.Equal(t, 5, opts.MaxSizeMB)
}
