package manifest

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a manifest encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Manifest is the on-disk description of a scaffold
type Manifest struct {
	Name        string      `toml:"name" yaml:"name"`
	Description string      `toml:"description" yaml:"description"`
	Directories []string    `toml:"directories" yaml:"directories"`
	Files       []FileEntry `toml:"files" yaml:"files"`
}

// FileEntry is one file of a manifest. Exactly one of Content and Source is set.
type FileEntry struct {
	Path    string  `toml:"path" yaml:"path"`
	Content *string `toml:"content,omitempty" yaml:"content,omitempty"`
	Source  string  `toml:"source,omitempty" yaml:"source,omitempty"`
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(path.Ext(filepath.ToSlash(p))) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.Newf(errors.ErrManifestLoad, "unsupported manifest extension: %s", p).
			WithDetail("path", p)
	}
}

// Parse decodes and validates a manifest
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	var err error

	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, errors.Newf(errors.ErrManifestLoad, "unsupported manifest format: %s", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s manifest", format)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest is structurally sound
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Files))
	for i, f := range m.Files {
		if strings.TrimSpace(f.Path) == "" {
			return errors.Newf(errors.ErrManifestInvalid, "file entry %d has no path", i).
				WithDetail("index", i)
		}
		hasContent := f.Content != nil
		hasSource := f.Source != ""
		if hasContent == hasSource {
			return errors.Newf(errors.ErrManifestInvalid,
				"file %s must set exactly one of content or source", f.Path).
				WithDetail("path", f.Path)
		}
		key := path.Clean(filepath.ToSlash(f.Path))
		if seen[key] {
			return errors.Newf(errors.ErrManifestInvalid, "duplicate file path: %s", f.Path).
				WithDetail("path", f.Path)
		}
		seen[key] = true
	}
	for i, d := range m.Directories {
		if strings.TrimSpace(d) == "" {
			return errors.Newf(errors.ErrManifestInvalid, "directory entry %d is empty", i).
				WithDetail("index", i)
		}
	}
	return nil
}

// Scaffold resolves sources from fsys, relative to dir, and returns the
// scaffold the manifest describes
func (m *Manifest) Scaffold(fsys fs.FS, dir string) (*types.Scaffold, error) {
	s := &types.Scaffold{
		Name:        m.Name,
		Description: strings.TrimSpace(m.Description),
		Directories: append([]string(nil), m.Directories...),
		Files:       make([]types.FileSpec, 0, len(m.Files)),
	}

	for _, f := range m.Files {
		if f.Content != nil {
			s.Files = append(s.Files, types.FileSpec{Path: f.Path, Content: *f.Content})
			continue
		}

		src := path.Join(dir, filepath.ToSlash(f.Source))
		if !fs.ValidPath(src) {
			return nil, errors.Newf(errors.ErrManifestInvalid,
				"source of %s leaves the manifest directory: %s", f.Path, f.Source).
				WithDetail("path", f.Path).
				WithDetail("source", f.Source)
		}
		data, err := fs.ReadFile(fsys, src)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to read source %s", f.Source).
				WithDetail("path", f.Path).
				WithDetail("source", f.Source)
		}
		s.Files = append(s.Files, types.FileSpec{Path: f.Path, Content: string(data)})
	}

	return s, nil
}

// Load reads the manifest at name from fsys and resolves it into a scaffold.
// A manifest without a name is named after its file.
func Load(fsys fs.FS, name string) (*types.Scaffold, error) {
	logger := logging.GetLogger("manifest")

	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to read manifest %s", name).
			WithDetail("path", name)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "invalid manifest %s", name).
			WithDetail("path", name)
	}
	if m.Name == "" {
		base := path.Base(name)
		m.Name = strings.TrimSuffix(base, path.Ext(base))
	}

	s, err := m.Scaffold(fsys, path.Dir(name))
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("manifest", name).
		Str("scaffold", s.Name).
		Int("directories", len(s.Directories)).
		Int("files", len(s.Files)).
		Msg("Manifest loaded")
	return s, nil
}

// LoadFile loads a manifest from the OS filesystem. Sources are resolved
// relative to the manifest's directory.
func LoadFile(p string) (*types.Scaffold, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "failed to resolve %s", p)
	}
	return Load(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
}
