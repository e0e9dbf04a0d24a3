package testutil

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/arthur-debert/scaffold/pkg/types"
)

// FailingFS wraps a filesystem and fails selected operations.
// Failures are matched by operation name and a path suffix.
type FailingFS struct {
	types.FS

	mu    sync.Mutex
	rules []failRule
	calls []string
}

type failRule struct {
	op     string
	suffix string
	err    error
}

// NewFailingFS wraps inner. With no rules it behaves exactly like inner.
func NewFailingFS(inner types.FS) *FailingFS {
	return &FailingFS{FS: inner}
}

// FailOn makes op ("mkdir", "write", "stat", "remove") fail with err for any
// path ending in suffix. An empty suffix matches every path.
func (f *FailingFS) FailOn(op, suffix string, err error) *FailingFS {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err == nil {
		err = &fs.PathError{Op: op, Path: suffix, Err: fs.ErrPermission}
	}
	f.rules = append(f.rules, failRule{op: op, suffix: suffix, err: err})
	return f
}

// Calls returns the recorded "op path" strings in call order
func (f *FailingFS) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FailingFS) check(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fmt.Sprintf("%s %s", op, path))
	for _, r := range f.rules {
		if r.op == op && strings.HasSuffix(path, r.suffix) {
			return r.err
		}
	}
	return nil
}

func (f *FailingFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check("stat", name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FailingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check("write", name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FailingFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check("mkdir", path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FailingFS) Remove(name string) error {
	if err := f.check("remove", name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}
