package types

import "io/fs"

// PlannedDir is a directory the emitter will ensure exists
type PlannedDir struct {
	// Rel is the slash separated path relative to the base directory
	Rel string
	// Abs is the resolved absolute path, guaranteed to be inside the base
	Abs string
	// Implied marks parents added for files the directory list did not cover
	Implied bool
	// Exists records whether the directory was present when planned
	Exists bool
}

// PlannedFile is a file the emitter will write
type PlannedFile struct {
	Rel     string
	Abs     string
	Content []byte
	// Exists records whether a file was present when planned
	Exists bool
}

// Plan is a fully validated scaffold bound to a base directory.
// Directories keep their declared order; files are sorted by Rel.
type Plan struct {
	BaseDir     string
	Scaffold    string
	Directories []PlannedDir
	Files       []PlannedFile
	DirMode     fs.FileMode
	FileMode    fs.FileMode
	Overwrite   OverwritePolicy
}

// ExistingFiles returns the relative paths of files already on disk
func (p *Plan) ExistingFiles() []string {
	var out []string
	for _, f := range p.Files {
		if f.Exists {
			out = append(out, f.Rel)
		}
	}
	return out
}
