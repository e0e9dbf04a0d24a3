// Package lock serialises scaffold runs against the same base directory.
//
// The lock file lives in scaffold's state directory, keyed by a hash of the
// base directory, so nothing is added to the directory being generated.
package lock

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/internal/hashutil"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/gofrs/flock"
)

// Lock is a held run lock
type Lock struct {
	fl      *flock.Flock
	baseDir string
}

// PathFor returns the lock file used for baseDir
func PathFor(baseDir string) string {
	return filepath.Join(paths.StateDir(), paths.LocksDir, hashutil.PathKey(baseDir)+".lock")
}

// Acquire takes the exclusive lock for baseDir without blocking. It fails
// with LOCKED when another run holds it.
func Acquire(baseDir string) (*Lock, error) {
	logger := logging.GetLogger("lock")

	lockPath := PathFor(baseDir)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create lock directory %s", filepath.Dir(lockPath))
	}

	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to acquire lock").
			WithDetail("lockFile", lockPath)
	}
	if !locked {
		return nil, errors.Newf(errors.ErrLocked, "another scaffold run is writing to %s", baseDir).
			WithDetail("base", baseDir).
			WithDetail("lockFile", lockPath)
	}

	logger.Debug().Str("base", baseDir).Str("lockFile", lockPath).Msg("Lock acquired")
	return &Lock{fl: fl, baseDir: baseDir}, nil
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.fl.Path()
}

// Release unlocks. It is safe to call more than once and on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to release lock").
			WithDetail("base", l.baseDir)
	}
	return nil
}
