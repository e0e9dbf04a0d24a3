package config

import (
	"io/fs"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// Config is the fully merged scaffold configuration
type Config struct {
	Output      Output      `koanf:"output"`
	Permissions Permissions `koanf:"permissions"`
	Execution   Execution   `koanf:"execution"`
	Logging     Logging     `koanf:"logging"`
	Templates   Templates   `koanf:"templates"`
}

// Output controls where and how scaffolds are written
type Output struct {
	BaseDir   string `koanf:"base_dir"`
	Overwrite string `koanf:"overwrite"`
	Format    string `koanf:"format"`
}

// Permissions are the modes used for created entries
type Permissions struct {
	Directory fs.FileMode `koanf:"directory"`
	File      fs.FileMode `koanf:"file"`
}

// Execution selects how the batch is applied
type Execution struct {
	Mode string `koanf:"mode"`
	Lock bool   `koanf:"lock"`
}

// Logging holds the log file rotation settings
type Logging struct {
	MaxSizeMB  int `koanf:"max_size_mb"`
	MaxBackups int `koanf:"max_backups"`
	MaxAgeDays int `koanf:"max_age_days"`
}

// Templates lists the templates used when none are requested explicitly
type Templates struct {
	Default []string `koanf:"default"`
}

// OverwritePolicy returns the parsed overwrite policy
func (c *Config) OverwritePolicy() types.OverwritePolicy {
	p, err := types.ParseOverwritePolicy(c.Output.Overwrite)
	if err != nil {
		return types.OverwriteReplace
	}
	return p
}

// ExecutionMode returns the parsed execution mode
func (c *Config) ExecutionMode() types.ExecutionMode {
	m, err := types.ParseExecutionMode(c.Execution.Mode)
	if err != nil {
		return types.ModeDirect
	}
	return m
}

// LoggingOptions converts the rotation settings into logger options
func (c *Config) LoggingOptions(verbosity int) logging.Options {
	opts := logging.DefaultOptions(verbosity)
	if c.Logging.MaxSizeMB > 0 {
		opts.MaxSizeMB = c.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups > 0 {
		opts.MaxBackups = c.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays > 0 {
		opts.MaxAgeDays = c.Logging.MaxAgeDays
	}
	return opts
}

// Validate checks that every value is usable
func (c *Config) Validate() error {
	if _, err := types.ParseOverwritePolicy(c.Output.Overwrite); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output.overwrite").
			WithDetail("value", c.Output.Overwrite)
	}
	if _, err := types.ParseExecutionMode(c.Execution.Mode); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid execution.mode").
			WithDetail("value", c.Execution.Mode)
	}
	switch c.Output.Format {
	case "", "auto", "term", "text", "json":
	default:
		return errors.Newf(errors.ErrConfigValid, "invalid output.format: %s", c.Output.Format).
			WithDetail("value", c.Output.Format)
	}
	if c.Permissions.Directory == 0 || c.Permissions.Directory&^fs.ModePerm != 0 {
		return errors.Newf(errors.ErrConfigValid, "invalid permissions.directory: %o", uint32(c.Permissions.Directory))
	}
	if c.Permissions.File == 0 || c.Permissions.File&^fs.ModePerm != 0 {
		return errors.Newf(errors.ErrConfigValid, "invalid permissions.file: %o", uint32(c.Permissions.File))
	}
	return nil
}
