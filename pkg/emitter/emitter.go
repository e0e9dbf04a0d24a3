package emitter

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/rs/zerolog"
)

const (
	// DefaultDirMode is used when no directory mode is configured
	DefaultDirMode fs.FileMode = 0755

	// DefaultFileMode is used when no file mode is configured
	DefaultFileMode fs.FileMode = 0644
)

// Transactor applies a whole plan at once and undoes partial work on failure
type Transactor interface {
	Apply(plan *types.Plan) ([]types.EntryResult, error)
}

// Options configures an Emitter
type Options struct {
	// FS is the filesystem written to. Nil means the OS filesystem.
	FS types.FS

	// Reporter receives a notice per entry. Nil discards notices.
	Reporter types.Reporter

	DirMode   fs.FileMode
	FileMode  fs.FileMode
	Overwrite types.OverwritePolicy

	// Mode selects direct or transactional execution
	Mode types.ExecutionMode

	// Transactor is required for transactional mode
	Transactor Transactor

	// DryRun is recorded in results; the caller supplies a dry-run FS
	DryRun bool
}

// Emitter creates directories and writes files below a base directory
type Emitter struct {
	fs         types.FS
	reporter   types.Reporter
	logger     zerolog.Logger
	dirMode    fs.FileMode
	fileMode   fs.FileMode
	overwrite  types.OverwritePolicy
	mode       types.ExecutionMode
	transactor Transactor
	dryRun     bool
}

// New creates an emitter
func New(opts Options) *Emitter {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = discard{}
	}
	overwrite := opts.Overwrite
	if overwrite == "" {
		overwrite = types.OverwriteReplace
	}
	mode := opts.Mode
	if mode == "" {
		mode = types.ModeDirect
	}

	return &Emitter{
		fs:         fsys,
		reporter:   reporter,
		logger:     logging.GetLogger("emitter"),
		dirMode:    modeOrDefault(opts.DirMode, DefaultDirMode),
		fileMode:   modeOrDefault(opts.FileMode, DefaultFileMode),
		overwrite:  overwrite,
		mode:       mode,
		transactor: opts.Transactor,
		dryRun:     opts.DryRun,
	}
}

// Run validates the whole scaffold, creates its directories, writes its
// files and finally reports completion. The result is returned even on
// failure and lists the entries that were applied before the error.
func (e *Emitter) Run(baseDir string, s *types.Scaffold) (*types.RunResult, error) {
	start := time.Now()
	result := &types.RunResult{
		Scaffold:  s.Name,
		BaseDir:   baseDir,
		Mode:      e.mode,
		DryRun:    e.dryRun,
		Timestamp: start,
	}
	defer func() { result.Duration = time.Since(start) }()

	plan, err := e.Plan(baseDir, s)
	if err != nil {
		e.logger.Error().Err(err).Str("baseDir", baseDir).Msg("Scaffold rejected")
		return result, err
	}
	result.BaseDir = plan.BaseDir

	if err := checkOverwrite(plan); err != nil {
		return result, err
	}

	e.logger.Info().
		Str("scaffold", plan.Scaffold).
		Str("baseDir", plan.BaseDir).
		Str("mode", string(e.mode)).
		Str("overwrite", string(plan.Overwrite)).
		Bool("dryRun", e.dryRun).
		Int("directories", len(plan.Directories)).
		Int("files", len(plan.Files)).
		Msg("Emitting scaffold")

	if e.mode == types.ModeTransactional {
		err = e.applyTransactional(plan, result)
	} else {
		err = e.applyDirect(plan, result)
	}
	if err != nil {
		return result, err
	}

	result.Duration = time.Since(start)
	e.reporter.Done(result)
	e.logger.Info().
		Int("entries", len(result.Entries)).
		Dur("duration", result.Duration).
		Msg("Scaffold emitted")
	return result, nil
}

// CreateDirectories ensures each directory exists below baseDir.
// Existing directories are not an error.
func (e *Emitter) CreateDirectories(baseDir string, directories []string) ([]types.EntryResult, error) {
	plan, err := e.Plan(baseDir, &types.Scaffold{Directories: directories})
	if err != nil {
		return nil, err
	}
	result := &types.RunResult{}
	err = e.createDirectories(plan, result)
	return result.Entries, err
}

// WriteFiles writes files below baseDir in lexical path order, honouring the
// overwrite policy. Missing parent directories are created.
func (e *Emitter) WriteFiles(baseDir string, files map[string]string) ([]types.EntryResult, error) {
	plan, err := e.Plan(baseDir, &types.Scaffold{Files: types.FileSpecsFromMap(files)})
	if err != nil {
		return nil, err
	}
	if err := checkOverwrite(plan); err != nil {
		return nil, err
	}
	result := &types.RunResult{}
	err = e.writeFiles(plan, result)
	return result.Entries, err
}

func (e *Emitter) applyDirect(plan *types.Plan, result *types.RunResult) error {
	if err := e.createDirectories(plan, result); err != nil {
		e.logPartial(result, err)
		return err
	}
	if err := e.writeFiles(plan, result); err != nil {
		e.logPartial(result, err)
		return err
	}
	return nil
}

func (e *Emitter) applyTransactional(plan *types.Plan, result *types.RunResult) error {
	if e.transactor == nil {
		return errors.New(errors.ErrInternal, "transactional mode requires a transactor")
	}

	entries, err := e.transactor.Apply(plan)
	if err != nil {
		result.Entries = append(result.Entries, failedOnly(entries)...)
		e.logger.Error().Err(err).Str("baseDir", plan.BaseDir).Msg("Transaction failed, changes rolled back")
		return err
	}

	for _, entry := range entries {
		result.Entries = append(result.Entries, entry)
		e.reporter.Entry(entry)
	}
	return nil
}

func (e *Emitter) createDirectories(plan *types.Plan, result *types.RunResult) error {
	for _, d := range plan.Directories {
		status := types.StatusCreated
		if info, err := e.fs.Stat(d.Abs); err == nil && info.IsDir() {
			status = types.StatusExisted
		}

		if err := e.fs.MkdirAll(d.Abs, plan.DirMode); err != nil {
			result.Entries = append(result.Entries, types.EntryResult{
				Kind: types.EntryDirectory, Path: d.Rel, Status: types.StatusFailed, Error: err,
			})
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", d.Rel).
				WithDetail("path", d.Rel).
				WithDetail("base", plan.BaseDir)
		}

		entry := types.EntryResult{Kind: types.EntryDirectory, Path: d.Rel, Status: status}
		result.Entries = append(result.Entries, entry)
		e.reporter.Entry(entry)
		e.logger.Debug().Str("path", d.Rel).Str("status", string(status)).Bool("implied", d.Implied).Msg("Directory ready")
	}
	return nil
}

func (e *Emitter) writeFiles(plan *types.Plan, result *types.RunResult) error {
	for _, f := range plan.Files {
		exists := false
		if _, err := e.fs.Stat(f.Abs); err == nil {
			exists = true
		}

		if exists && plan.Overwrite == types.OverwriteSkip {
			entry := types.EntryResult{Kind: types.EntryFile, Path: f.Rel, Status: types.StatusSkipped}
			result.Entries = append(result.Entries, entry)
			e.reporter.Entry(entry)
			e.logger.Debug().Str("path", f.Rel).Msg("File exists, skipped")
			continue
		}
		if exists && plan.Overwrite == types.OverwriteError {
			return errors.Newf(errors.ErrAlreadyExists, "file already exists: %s", f.Rel).
				WithDetail("path", f.Rel)
		}

		err := e.fs.MkdirAll(filepath.Dir(f.Abs), plan.DirMode)
		if err == nil {
			err = e.fs.WriteFile(f.Abs, f.Content, plan.FileMode)
		}
		if err != nil {
			result.Entries = append(result.Entries, types.EntryResult{
				Kind: types.EntryFile, Path: f.Rel, Status: types.StatusFailed, Error: err,
			})
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", f.Rel).
				WithDetail("path", f.Rel).
				WithDetail("base", plan.BaseDir)
		}

		status := types.StatusCreated
		if exists {
			status = types.StatusOverwritten
		}
		entry := types.EntryResult{Kind: types.EntryFile, Path: f.Rel, Status: status, Bytes: len(f.Content)}
		result.Entries = append(result.Entries, entry)
		e.reporter.Entry(entry)
		e.logger.Debug().Str("path", f.Rel).Str("status", string(status)).Int("bytes", len(f.Content)).Msg("File written")
	}
	return nil
}

// logPartial records which entries reached the disk before a failure so a
// re-run can be judged safe
func (e *Emitter) logPartial(result *types.RunResult, err error) {
	e.logger.Error().
		Err(err).
		Str("baseDir", result.BaseDir).
		Strs("applied", result.Succeeded()).
		Msg("Run aborted, partial output left on disk")
}

func failedOnly(entries []types.EntryResult) []types.EntryResult {
	var out []types.EntryResult
	for _, entry := range entries {
		if entry.Status == types.StatusFailed {
			out = append(out, entry)
		}
	}
	return out
}

type discard struct{}

func (discard) Entry(types.EntryResult) {}
func (discard) Done(*types.RunResult)   {}
