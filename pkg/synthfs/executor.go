package synthfs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// Executor runs a plan through synthfs
type Executor struct {
	logger         zerolog.Logger
	filesystem     filesystem.FullFileSystem
	enableRollback bool
}

// NewExecutor creates an executor on the OS filesystem with rollback enabled
func NewExecutor() *Executor {
	// Use PathAwareFileSystem to handle absolute paths directly
	osfs := filesystem.NewOSFileSystem("/")
	pathAwareFS := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()

	return &Executor{
		logger:         logging.GetLogger("synthfs"),
		filesystem:     pathAwareFS,
		enableRollback: true,
	}
}

// backup holds the previous content of a file replaced during the batch
type backup struct {
	path    string
	content []byte
	mode    os.FileMode
}

// Apply converts the plan into synthfs operations and runs them as one
// batch. On failure created entries are rolled back by synthfs and replaced
// files get their previous content back.
func (e *Executor) Apply(plan *types.Plan) ([]types.EntryResult, error) {
	sfs := synthfs.New()
	ctx := context.Background()

	var entries []types.EntryResult
	var ops []synthfs.Operation
	entryIndex := make(map[synthfs.OperationID]int)
	var backups []*backup

	for i, d := range plan.Directories {
		if d.Exists {
			entries = append(entries, types.EntryResult{
				Kind: types.EntryDirectory, Path: d.Rel, Status: types.StatusExisted,
			})
			continue
		}
		id := fmt.Sprintf("mkdir_%d_%s", i, d.Rel)
		op := sfs.CreateDirWithID(id, d.Abs, plan.DirMode)
		entryIndex[op.ID()] = len(entries)
		ops = append(ops, op)
		entries = append(entries, types.EntryResult{
			Kind: types.EntryDirectory, Path: d.Rel, Status: types.StatusCreated,
		})
	}

	for i, f := range plan.Files {
		entry := types.EntryResult{Kind: types.EntryFile, Path: f.Rel, Bytes: len(f.Content)}

		var op synthfs.Operation
		switch {
		case f.Exists && plan.Overwrite == types.OverwriteSkip:
			entry.Status = types.StatusSkipped
			entry.Bytes = 0
			entries = append(entries, entry)
			continue
		case f.Exists:
			b := &backup{path: f.Abs, mode: plan.FileMode}
			backups = append(backups, b)
			op = sfs.CustomOperationWithID(fmt.Sprintf("overwrite_%d_%s", i, f.Rel),
				replaceFileOperation(b, f.Content, plan.FileMode))
			entry.Status = types.StatusOverwritten
		default:
			op = sfs.CreateFileWithID(fmt.Sprintf("write_%d_%s", i, f.Rel), f.Abs, f.Content, plan.FileMode)
			entry.Status = types.StatusCreated
		}

		entryIndex[op.ID()] = len(entries)
		ops = append(ops, op)
		entries = append(entries, entry)
	}

	if len(ops) == 0 {
		e.logger.Info().Msg("Nothing to apply, every entry already in place")
		return entries, nil
	}

	// Set up pipeline options
	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = e.enableRollback

	e.logger.Info().
		Int("operationCount", len(ops)).
		Bool("rollbackEnabled", e.enableRollback).
		Msg("Executing synthfs operations")

	result, err := synthfs.RunWithOptions(ctx, e.filesystem, options, ops...)
	e.applyResults(result, entries, entryIndex)

	if err != nil {
		e.logger.Error().Err(err).Msg("synthfs batch failed")
		if restoreErr := e.restore(backups); restoreErr != nil {
			return entries, errors.Wrapf(restoreErr, errors.ErrRollback,
				"failed to restore replaced files after error: %v", err)
		}
		return entries, errors.Wrapf(err, errors.ErrExecute,
			"failed to apply scaffold to %s", plan.BaseDir).
			WithDetail("base", plan.BaseDir)
	}

	e.logger.Info().Msg("All operations executed successfully")
	return entries, nil
}

// applyResults marks entries whose operation did not succeed as failed
func (e *Executor) applyResults(result *synthfs.Result, entries []types.EntryResult, entryIndex map[synthfs.OperationID]int) {
	if result == nil {
		return
	}

	for _, opResult := range result.GetOperations() {
		synthfsResult, ok := opResult.(synthfs.OperationResult)
		if !ok {
			continue
		}
		idx, exists := entryIndex[synthfsResult.OperationID]
		if !exists {
			e.logger.Warn().
				Str("operationID", string(synthfsResult.OperationID)).
				Msg("Could not find entry for synthfs result")
			continue
		}
		switch synthfsResult.Status {
		case synthfs.StatusSuccess:
		case synthfs.StatusFailure, synthfs.StatusValidation:
			entries[idx].Status = types.StatusFailed
			entries[idx].Error = synthfsResult.Error
		default:
			entries[idx].Status = types.StatusFailed
		}
		e.logger.Debug().
			Str("operationID", string(synthfsResult.OperationID)).
			Dur("duration", synthfsResult.Duration).
			Msg("Operation finished")
	}
}

// restore writes back the content of every file replaced before the failure
func (e *Executor) restore(backups []*backup) error {
	for _, b := range backups {
		if b.content == nil {
			continue
		}
		if err := e.filesystem.WriteFile(b.path, b.content, b.mode); err != nil {
			return fmt.Errorf("failed to restore %s: %w", b.path, err)
		}
		e.logger.Debug().Str("path", b.path).Msg("Restored replaced file")
	}
	return nil
}

// replaceFileOperation writes content over b.path. The previous content is
// kept in b only once the file has actually changed, so a write that fails
// without touching the file leaves nothing to restore.
func replaceFileOperation(b *backup, content []byte, mode os.FileMode) func(context.Context, filesystem.FileSystem) error {
	return func(ctx context.Context, fs filesystem.FileSystem) error {
		if dir := filepath.Dir(b.path); dir != "." && dir != "/" {
			if err := fs.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create parent directory %s: %w", dir, err)
			}
		}

		existing, found, err := readExisting(fs, b.path)
		if err != nil {
			return err
		}

		if err := fs.WriteFile(b.path, content, mode); err != nil {
			if found {
				if current, _, readErr := readExisting(fs, b.path); readErr != nil || !bytes.Equal(current, existing) {
					b.content = existing
				}
			}
			return fmt.Errorf("failed to write file %s: %w", b.path, err)
		}
		if found {
			b.content = existing
		}
		return nil
	}
}

// readExisting returns the content of path and whether it exists
func readExisting(fs filesystem.FileSystem, path string) ([]byte, bool, error) {
	file, err := fs.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, true, nil
}
