package emitter

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// Plan resolves every entry of s against baseDir. Nothing is written; the
// filesystem is only inspected to record what already exists.
func (e *Emitter) Plan(baseDir string, s *types.Scaffold) (*types.Plan, error) {
	base, err := paths.ResolveBaseDir(baseDir)
	if err != nil {
		return nil, err
	}

	plan := &types.Plan{
		BaseDir:   base,
		Scaffold:  s.Name,
		DirMode:   e.dirMode,
		FileMode:  e.fileMode,
		Overwrite: e.overwrite,
	}

	declared := make(map[string]bool, len(s.Directories))
	for _, d := range s.Directories {
		rel, abs, err := resolve(base, d)
		if err != nil {
			return nil, err
		}
		if declared[rel] {
			continue
		}
		if err := paths.CheckRealWithin(base, abs); err != nil {
			return nil, err
		}
		declared[rel] = true
		plan.Directories = append(plan.Directories, types.PlannedDir{Rel: rel, Abs: abs})
	}

	files := make(map[string]bool, len(s.Files))
	for _, f := range s.Files {
		rel, abs, err := resolve(base, f.Path)
		if err != nil {
			return nil, err
		}
		if files[rel] {
			return nil, errors.Newf(errors.ErrInvalidInput, "duplicate file path: %s", f.Path).
				WithDetail("path", f.Path)
		}
		if declared[rel] {
			return nil, errors.Newf(errors.ErrInvalidInput, "%s is listed as both a directory and a file", rel).
				WithDetail("path", rel)
		}
		if err := paths.CheckRealWithin(base, abs); err != nil {
			return nil, err
		}
		files[rel] = true
		plan.Files = append(plan.Files, types.PlannedFile{Rel: rel, Abs: abs, Content: []byte(f.Content)})
	}
	sort.Slice(plan.Files, func(i, j int) bool {
		return plan.Files[i].Rel < plan.Files[j].Rel
	})

	for _, f := range plan.Files {
		parent := path.Dir(f.Rel)
		if parent == "." || covered(plan.Directories, parent) {
			continue
		}
		if files[parent] {
			return nil, errors.Newf(errors.ErrInvalidInput, "%s is a file and cannot hold %s", parent, f.Rel).
				WithDetail("path", f.Rel)
		}
		plan.Directories = append(plan.Directories, types.PlannedDir{
			Rel:     parent,
			Abs:     filepath.Join(base, filepath.FromSlash(parent)),
			Implied: true,
		})
	}

	if err := e.inspect(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// inspect records which entries are already present
func (e *Emitter) inspect(plan *types.Plan) error {
	for i := range plan.Directories {
		if info, err := e.fs.Stat(plan.Directories[i].Abs); err == nil && info.IsDir() {
			plan.Directories[i].Exists = true
		}
	}
	for i := range plan.Files {
		info, err := e.fs.Stat(plan.Files[i].Abs)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return errors.Newf(errors.ErrFileWrite, "cannot write %s: a directory is in the way", plan.Files[i].Rel).
				WithDetail("path", plan.Files[i].Rel)
		}
		plan.Files[i].Exists = true
	}
	return nil
}

// resolve validates rel and returns its cleaned slash form and absolute path
func resolve(base, rel string) (string, string, error) {
	abs, err := paths.ResolveWithin(base, rel)
	if err != nil {
		return "", "", err
	}
	cleaned := path.Clean(filepath.ToSlash(rel))
	return cleaned, abs, nil
}

// covered reports whether creating dirs leaves dir in place
func covered(dirs []types.PlannedDir, dir string) bool {
	for _, d := range dirs {
		if d.Rel == dir || strings.HasPrefix(d.Rel, dir+"/") {
			return true
		}
	}
	return false
}

// checkOverwrite enforces the error policy before anything is written
func checkOverwrite(plan *types.Plan) error {
	if plan.Overwrite != types.OverwriteError {
		return nil
	}
	existing := plan.ExistingFiles()
	if len(existing) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrAlreadyExists, "%d file(s) already exist in %s, first: %s",
		len(existing), plan.BaseDir, existing[0]).
		WithDetail("paths", existing).
		WithDetail("base", plan.BaseDir)
}

func modeOrDefault(m, def fs.FileMode) fs.FileMode {
	if m == 0 {
		return def
	}
	return m
}
