package types

import "time"

// EntryKind tells directories and files apart in results
type EntryKind string

const (
	EntryDirectory EntryKind = "directory"
	EntryFile      EntryKind = "file"
)

// EntryStatus is the outcome for a single directory or file
type EntryStatus string

const (
	// StatusCreated means the entry did not exist and was created
	StatusCreated EntryStatus = "created"

	// StatusExisted means a directory was already present
	StatusExisted EntryStatus = "existed"

	// StatusOverwritten means an existing file was replaced
	StatusOverwritten EntryStatus = "overwritten"

	// StatusSkipped means an existing file was kept because of the skip policy
	StatusSkipped EntryStatus = "skipped"

	// StatusFailed means the filesystem rejected the operation
	StatusFailed EntryStatus = "failed"
)

// EntryResult reports what happened to one entry of the scaffold
type EntryResult struct {
	Kind   EntryKind   `json:"kind"`
	Path   string      `json:"path"`
	Status EntryStatus `json:"status"`
	Bytes  int         `json:"bytes,omitempty"`
	Error  error       `json:"-"`
}

// RunResult holds the result of one emitter run
type RunResult struct {
	Scaffold  string        `json:"scaffold"`
	BaseDir   string        `json:"baseDir"`
	Mode      ExecutionMode `json:"mode"`
	DryRun    bool          `json:"dryRun"`
	Entries   []EntryResult `json:"entries"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
}

// Count returns how many entries of the given kind ended in the given status
func (r *RunResult) Count(kind EntryKind, status EntryStatus) int {
	n := 0
	for _, e := range r.Entries {
		if e.Kind == kind && e.Status == status {
			n++
		}
	}
	return n
}

// Succeeded returns the relative paths of every entry that was applied.
// After a failed direct run this is exactly the partial state left on disk.
func (r *RunResult) Succeeded() []string {
	var paths []string
	for _, e := range r.Entries {
		if e.Status != StatusFailed && e.Status != StatusSkipped {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// TemplateInfo contains summary information about a single template.
type TemplateInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Directories []string `json:"directories"`
	Files       []string `json:"files"`
}

// ListTemplatesResult holds the result of the 'list' command.
type ListTemplatesResult struct {
	Templates []TemplateInfo `json:"templates"`
}

// GenConfigResult holds the result of the 'genconfig' command.
type GenConfigResult struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}
