package generate

import (
	"github.com/arthur-debert/scaffold/pkg/config"
	"github.com/arthur-debert/scaffold/pkg/emitter"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/lock"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/arthur-debert/scaffold/pkg/synthfs"
	"github.com/arthur-debert/scaffold/pkg/templates"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// GenerateOptions defines the options for the Generate command.
type GenerateOptions struct {
	// BaseDir is the output directory. Empty means output.base_dir.
	BaseDir string

	// Templates are built-in template names merged in order
	Templates []string

	// ManifestPath is an external scaffold definition merged after Templates
	ManifestPath string

	// Config defaults to the embedded defaults
	Config *config.Config

	// DryRun writes to an in-memory layer over the real filesystem
	DryRun bool

	// FileSystem overrides the filesystem chosen from DryRun
	FileSystem types.FS

	// Reporter receives progress notices
	Reporter types.Reporter
}

// Generate emits the selected scaffold into the base directory.
func Generate(opts GenerateOptions) (*types.RunResult, error) {
	log := logging.GetLogger("commands.generate")
	log.Debug().Str("command", "Generate").Msg("Executing command")

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = cfg.Output.BaseDir
	}
	baseDir, err := paths.ResolveBaseDir(baseDir)
	if err != nil {
		return nil, err
	}

	scaffold, err := SelectScaffold(opts.Templates, opts.ManifestPath, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Execution.Lock && !opts.DryRun {
		l, err := lock.Acquire(baseDir)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := l.Release(); err != nil {
				log.Warn().Err(err).Msg("Failed to release lock")
			}
		}()
	}

	fsys := opts.FileSystem
	if fsys == nil {
		if opts.DryRun {
			fsys = filesystem.NewDryRun()
		} else {
			fsys = filesystem.NewOS()
		}
	}

	// synthfs writes straight to disk, so a dry run always goes direct
	mode := cfg.ExecutionMode()
	if opts.DryRun {
		mode = types.ModeDirect
	}

	emitterOpts := emitter.Options{
		FS:        fsys,
		Reporter:  opts.Reporter,
		DirMode:   cfg.Permissions.Directory,
		FileMode:  cfg.Permissions.File,
		Overwrite: cfg.OverwritePolicy(),
		Mode:      mode,
		DryRun:    opts.DryRun,
	}
	if mode == types.ModeTransactional {
		emitterOpts.Transactor = synthfs.NewExecutor()
	}

	result, err := emitter.New(emitterOpts).Run(baseDir, scaffold)
	if err != nil {
		return result, err
	}

	log.Info().
		Str("command", "Generate").
		Str("scaffold", result.Scaffold).
		Int("entries", len(result.Entries)).
		Msg("Command finished")
	return result, nil
}

// SelectScaffold builds the scaffold to emit from the requested templates
// and manifest. With neither, the configured default templates are used.
func SelectScaffold(names []string, manifestPath string, cfg *config.Config) (*types.Scaffold, error) {
	if len(names) == 0 && manifestPath == "" {
		names = cfg.Templates.Default
		if len(names) == 0 {
			names = []string{templates.DefaultTemplate}
		}
	}

	var parts []*types.Scaffold
	if len(names) > 0 {
		s, err := templates.Compose(names...)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	if manifestPath != "" {
		s, err := manifest.LoadFile(manifestPath)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return templates.Merge(parts...)
}
