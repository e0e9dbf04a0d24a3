package types

import (
	"io/fs"
)

// FS is the filesystem interface required for scaffold operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// Reporter receives progress notices while a scaffold is emitted
type Reporter interface {
	// Entry is called once per directory or file after it was handled
	Entry(result EntryResult)

	// Done is called once after the whole run completed successfully
	Done(result *RunResult)
}
