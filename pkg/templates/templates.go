package templates

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/types"
)

//go:embed all:files
var embedded embed.FS

// ManifestFile is the name of the manifest inside each template directory
const ManifestFile = "manifest.toml"

// DefaultTemplate is the scaffold generated when nothing else is requested
const DefaultTemplate = "core"

var (
	loadOnce sync.Once
	registry map[string]*types.Scaffold
	loadErr  error
)

func load() (map[string]*types.Scaffold, error) {
	loadOnce.Do(func() {
		registry, loadErr = loadFrom(embedded, "files")
	})
	return registry, loadErr
}

// loadFrom reads every <root>/<name>/manifest.toml found in fsys
func loadFrom(fsys fs.FS, root string) (map[string]*types.Scaffold, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to read embedded templates")
	}

	out := make(map[string]*types.Scaffold, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		s, err := manifest.Load(fsys, path.Join(root, entry.Name(), ManifestFile))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "broken built-in template %s", entry.Name())
		}
		out[s.Name] = s
	}
	return out, nil
}

// Names returns the built-in template names in sorted order
func Names() []string {
	reg, err := load()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a copy of the named template
func Get(name string) (*types.Scaffold, error) {
	reg, err := load()
	if err != nil {
		return nil, err
	}
	s, ok := reg[name]
	if !ok {
		return nil, errors.Newf(errors.ErrTemplateNotFound, "unknown template: %s", name).
			WithDetail("template", name).
			WithDetail("available", strings.Join(Names(), ", "))
	}
	return clone(s), nil
}

// Default returns the default template
func Default() (*types.Scaffold, error) {
	return Get(DefaultTemplate)
}

// Info returns the listing view of every built-in template
func Info() ([]types.TemplateInfo, error) {
	var infos []types.TemplateInfo
	for _, name := range Names() {
		s, err := Get(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, InfoFor(s))
	}
	return infos, nil
}

// InfoFor summarises a scaffold for listings
func InfoFor(s *types.Scaffold) types.TemplateInfo {
	info := types.TemplateInfo{
		Name:        s.Name,
		Description: s.Description,
		Directories: append([]string(nil), s.Directories...),
	}
	for _, f := range s.SortedFiles() {
		info.Files = append(info.Files, f.Path)
	}
	return info
}

// Compose resolves the named templates and merges them into one scaffold
func Compose(names ...string) (*types.Scaffold, error) {
	scaffolds := make([]*types.Scaffold, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		s, err := Get(name)
		if err != nil {
			return nil, err
		}
		scaffolds = append(scaffolds, s)
	}
	return Merge(scaffolds...)
}

// Merge combines scaffolds in order. Directories are unioned keeping their
// first position; a file path defined by two scaffolds is a conflict.
func Merge(scaffolds ...*types.Scaffold) (*types.Scaffold, error) {
	if len(scaffolds) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no scaffolds to merge")
	}
	if len(scaffolds) == 1 {
		return clone(scaffolds[0]), nil
	}

	merged := &types.Scaffold{}
	var names []string
	dirs := make(map[string]bool)
	owner := make(map[string]string)

	for _, s := range scaffolds {
		names = append(names, s.Name)
		for _, d := range s.Directories {
			key := path.Clean(d)
			if dirs[key] {
				continue
			}
			dirs[key] = true
			merged.Directories = append(merged.Directories, d)
		}
		for _, f := range s.Files {
			key := path.Clean(f.Path)
			if prev, ok := owner[key]; ok {
				return nil, errors.Newf(errors.ErrTemplateConflict,
					"file %s is defined by both %s and %s", f.Path, prev, s.Name).
					WithDetail("path", f.Path).
					WithDetail("templates", []string{prev, s.Name})
			}
			owner[key] = s.Name
			merged.Files = append(merged.Files, f)
		}
	}

	merged.Name = strings.Join(names, "+")
	merged.Description = "Combination of " + strings.Join(names, ", ")
	return merged, nil
}

func clone(s *types.Scaffold) *types.Scaffold {
	return &types.Scaffold{
		Name:        s.Name,
		Description: s.Description,
		Directories: append([]string(nil), s.Directories...),
		Files:       append([]types.FileSpec(nil), s.Files...),
	}
}
