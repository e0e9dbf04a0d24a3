package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// EnvironmentType defines the type of test environment
type EnvironmentType int

const (
	// EnvMemoryOnly keeps every write in memory
	EnvMemoryOnly EnvironmentType = iota

	// EnvIsolated uses real directories under t.TempDir()
	EnvIsolated
)

// TestEnvironment bundles a base directory, isolated XDG locations and the
// filesystem the code under test should use.
type TestEnvironment struct {
	t    *testing.T
	Type EnvironmentType

	// BaseDir is where scaffolds are emitted
	BaseDir string

	// HomeDir, ConfigDir and StateDir replace the user's real locations
	HomeDir   string
	ConfigDir string
	StateDir  string

	FS types.FS
}

// NewTestEnvironment creates an environment of the given type. HOME and the
// scaffold XDG overrides are pointed at temporary directories for the
// duration of the test, so nothing touches the real user state.
func NewTestEnvironment(t *testing.T, envType EnvironmentType) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	env := &TestEnvironment{
		t:         t,
		Type:      envType,
		HomeDir:   filepath.Join(root, "home"),
		ConfigDir: filepath.Join(root, "config", "scaffold"),
		StateDir:  filepath.Join(root, "state", "scaffold"),
	}

	for _, dir := range []string{env.HomeDir, env.ConfigDir, env.StateDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("SCAFFOLD_CONFIG_DIR", env.ConfigDir)
	t.Setenv("SCAFFOLD_STATE_DIR", env.StateDir)

	switch envType {
	case EnvMemoryOnly:
		env.BaseDir = "/scaffold/out"
		env.FS = filesystem.NewMemory()
		if err := env.FS.MkdirAll(env.BaseDir, 0755); err != nil {
			t.Fatalf("Failed to create memory base dir: %v", err)
		}
	default:
		env.BaseDir = filepath.Join(root, "out")
		if err := os.MkdirAll(env.BaseDir, 0755); err != nil {
			t.Fatalf("Failed to create base dir: %v", err)
		}
		env.FS = filesystem.NewOS()
	}

	return env
}

// Path returns rel resolved against the base directory
func (e *TestEnvironment) Path(rel string) string {
	return filepath.Join(e.BaseDir, filepath.FromSlash(rel))
}

// ReadFile reads rel from the environment's filesystem
func (e *TestEnvironment) ReadFile(rel string) string {
	e.t.Helper()

	data, err := e.FS.ReadFile(e.Path(rel))
	if err != nil {
		e.t.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

// WriteFile writes rel into the environment's filesystem, creating parents
func (e *TestEnvironment) WriteFile(rel, content string) {
	e.t.Helper()

	full := e.Path(rel)
	if err := e.FS.MkdirAll(filepath.Dir(full), 0755); err != nil {
		e.t.Fatalf("Failed to create parent of %s: %v", rel, err)
	}
	if err := e.FS.WriteFile(full, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write %s: %v", rel, err)
	}
}

// Exists reports whether rel exists in the environment's filesystem
func (e *TestEnvironment) Exists(rel string) bool {
	_, err := e.FS.Stat(e.Path(rel))
	return err == nil
}

// IsDir reports whether rel is a directory in the environment's filesystem
func (e *TestEnvironment) IsDir(rel string) bool {
	info, err := e.FS.Stat(e.Path(rel))
	return err == nil && info.IsDir()
}
