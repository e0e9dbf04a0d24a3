package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/scaffold/pkg/errors"
)

// Environment variable names
const (
	// EnvBaseDir sets the default output directory
	EnvBaseDir = "SCAFFOLD_BASE_DIR"

	// EnvConfigDir overrides the XDG config directory for scaffold
	EnvConfigDir = "SCAFFOLD_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for scaffold
	EnvStateDir = "SCAFFOLD_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for scaffold-specific files
	AppDirName = "scaffold"

	// UserConfigFile is the name of the user configuration file
	UserConfigFile = "config.toml"

	// ProjectConfigFile is the name of the per-project configuration file
	ProjectConfigFile = ".scaffold.toml"

	// LocksDir is the state subdirectory holding run locks
	LocksDir = "locks"

	// LogFileName is the name of the log file
	LogFileName = "scaffold.log"
)

// Paths provides centralized path management for scaffold
type Paths interface {
	BaseDir() string
	ConfigDir() string
	StateDir() string
	UserConfigPath() string
	LocksDir() string
	LogFilePath() string
	Resolve(rel string) (string, error)
}

type paths struct {
	// baseDir is the absolute directory scaffolds are emitted into
	baseDir string

	xdgConfig string
	xdgState  string
}

// New creates a new Paths instance with the given base directory.
// If baseDir is empty, SCAFFOLD_BASE_DIR is used, then the current
// working directory.
func New(baseDir string) (Paths, error) {
	p := &paths{}

	if baseDir == "" {
		baseDir = os.Getenv(EnvBaseDir)
	}
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		baseDir = cwd
	}

	abs, err := ResolveBaseDir(baseDir)
	if err != nil {
		return nil, err
	}
	p.baseDir = abs

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	p.xdgConfig = ConfigDir()
	p.xdgState = StateDir()
}

func (p *paths) BaseDir() string   { return p.baseDir }
func (p *paths) ConfigDir() string { return p.xdgConfig }
func (p *paths) StateDir() string  { return p.xdgState }

func (p *paths) UserConfigPath() string {
	return filepath.Join(p.xdgConfig, UserConfigFile)
}

func (p *paths) LocksDir() string {
	return filepath.Join(p.xdgState, LocksDir)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// Resolve joins rel onto the base directory, refusing paths that escape it
func (p *paths) Resolve(rel string) (string, error) {
	return ResolveWithin(p.baseDir, rel)
}

// ConfigDir returns scaffold's XDG config directory
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns scaffold's XDG state directory
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ResolveBaseDir expands ~ and makes the base directory absolute and clean
func ResolveBaseDir(baseDir string) (string, error) {
	if err := ValidatePath(baseDir); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expandHome(baseDir))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", baseDir)
	}
	return abs, nil
}

// GetHomeDirectory returns the user's home directory
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get home directory")
		}
	}
	return homeDir, nil
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		// Can't expand, return as-is
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~\
	if path[1] == '/' || path[1] == '\\' {
		return filepath.Join(homeDir, strings.TrimLeft(path[2:], `/\`))
	}

	// ~user forms are not supported
	return path
}
