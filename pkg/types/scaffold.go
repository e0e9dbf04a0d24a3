package types

import (
	"fmt"
	"sort"
	"strings"
)

// OverwritePolicy decides what happens when a target file already exists
type OverwritePolicy string

const (
	// OverwriteReplace truncates and rewrites existing files
	OverwriteReplace OverwritePolicy = "overwrite"

	// OverwriteError refuses to run when any target file already exists
	OverwriteError OverwritePolicy = "error"

	// OverwriteSkip keeps existing files untouched
	OverwriteSkip OverwritePolicy = "skip"
)

// ParseOverwritePolicy parses a policy name, accepting the empty string as the default
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch OverwritePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", OverwriteReplace:
		return OverwriteReplace, nil
	case OverwriteError:
		return OverwriteError, nil
	case OverwriteSkip:
		return OverwriteSkip, nil
	default:
		return "", fmt.Errorf("unknown overwrite policy: %s", s)
	}
}

// ExecutionMode selects how the batch is applied to the filesystem
type ExecutionMode string

const (
	// ModeDirect applies each entry in turn and stops at the first failure
	ModeDirect ExecutionMode = "direct"

	// ModeTransactional applies the batch through synthfs and rolls back on failure
	ModeTransactional ExecutionMode = "transactional"
)

// ParseExecutionMode parses an execution mode name
func ParseExecutionMode(s string) (ExecutionMode, error) {
	switch ExecutionMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDirect:
		return ModeDirect, nil
	case ModeTransactional:
		return ModeTransactional, nil
	default:
		return "", fmt.Errorf("unknown execution mode: %s", s)
	}
}

// FileSpec is a single entry of the content map
type FileSpec struct {
	// Path is relative to the base directory, slash separated
	Path    string
	Content string
}

// Scaffold is a directory list plus a content map, the unit the emitter writes
type Scaffold struct {
	Name        string
	Description string
	Directories []string
	Files       []FileSpec
}

// ContentMap returns the files keyed by their relative path
func (s *Scaffold) ContentMap() map[string]string {
	m := make(map[string]string, len(s.Files))
	for _, f := range s.Files {
		m[f.Path] = f.Content
	}
	return m
}

// SortedFiles returns the files ordered by relative path.
// This is the order in which the emitter writes them.
func (s *Scaffold) SortedFiles() []FileSpec {
	files := make([]FileSpec, len(s.Files))
	copy(files, s.Files)
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}

// FileSpecsFromMap converts a content map into file specs ordered by path
func FileSpecsFromMap(m map[string]string) []FileSpec {
	files := make([]FileSpec, 0, len(m))
	for path, content := range m {
		files = append(files, FileSpec{Path: path, Content: content})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}
