package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
)

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	// Common filesystem limit
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// ValidateRelative checks that rel is a relative path that stays inside
// whatever directory it is later joined onto.
func ValidateRelative(rel string) error {
	if err := ValidatePath(rel); err != nil {
		return err
	}

	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") || strings.HasPrefix(rel, `\`) ||
		filepath.VolumeName(rel) != "" {
		return errors.Newf(errors.ErrPathEscape, "path must be relative: %s", rel).
			WithDetail("path", rel)
	}

	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if cleaned == "." {
		return errors.Newf(errors.ErrInvalidInput, "path resolves to the base directory itself: %s", rel).
			WithDetail("path", rel)
	}
	if escapes(cleaned) {
		return errors.Newf(errors.ErrPathEscape, "path escapes the base directory: %s", rel).
			WithDetail("path", rel)
	}

	return nil
}

// ResolveWithin joins rel onto base and returns the result, refusing any
// path that would land outside base.
func ResolveWithin(base, rel string) (string, error) {
	if err := ValidateRelative(rel); err != nil {
		return "", err
	}

	full := filepath.Join(base, filepath.FromSlash(rel))
	if !ContainsPath(base, full) {
		return "", errors.Newf(errors.ErrPathEscape, "path escapes the base directory: %s", rel).
			WithDetail("path", rel).
			WithDetail("base", base)
	}
	return full, nil
}

// maxSymlinks bounds link chains followed by EvalExisting
const maxSymlinks = 255

// EvalExisting follows every symlink along p. Trailing components that do
// not exist yet are kept as written, so the result is where a later write
// to p would actually land.
func EvalExisting(p string) (string, error) {
	cur := filepath.Clean(p)
	var rest []string
	links := 0

	for {
		real, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(append([]string{real}, rest...)...), nil
		}

		info, lerr := os.Lstat(cur)
		switch {
		case lerr != nil:
			parent := filepath.Dir(cur)
			if parent == cur {
				return filepath.Join(append([]string{cur}, rest...)...), nil
			}
			rest = append([]string{filepath.Base(cur)}, rest...)
			cur = parent
		case info.Mode()&os.ModeSymlink != 0:
			// dangling link, follow it by hand
			links++
			if links > maxSymlinks {
				return "", errors.Newf(errors.ErrFileAccess, "too many symbolic links resolving %s", p).
					WithDetail("path", p)
			}
			target, rerr := os.Readlink(cur)
			if rerr != nil {
				return "", errors.Wrapf(rerr, errors.ErrFileAccess, "cannot read link %s", cur)
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(cur), target)
			}
			cur = filepath.Clean(target)
		default:
			return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot resolve %s", cur)
		}
	}
}

// CheckRealWithin refuses full when following symlinks already on disk
// takes it outside base.
func CheckRealWithin(base, full string) error {
	realBase, err := EvalExisting(base)
	if err != nil {
		return err
	}
	realFull, err := EvalExisting(full)
	if err != nil {
		return err
	}
	if !ContainsPath(realBase, realFull) {
		return errors.Newf(errors.ErrPathEscape, "path escapes the base directory through a symlink: %s", full).
			WithDetail("path", full).
			WithDetail("target", realFull).
			WithDetail("base", base)
	}
	return nil
}

// SanitizePath expands ~ and cleans the path
func SanitizePath(path string) string {
	path = expandHome(path)

	cleaned := filepath.Clean(path)
	if cleaned == "" {
		return "."
	}
	return cleaned
}

// ContainsPath checks if child is contained within parent.
// Both paths are normalized before comparison.
func ContainsPath(parent, child string) bool {
	parent = SanitizePath(parent)
	child = SanitizePath(child)

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return !escapes(rel)
}

// RelativePath returns target relative to base, slash separated
func RelativePath(base, target string) (string, error) {
	rel, err := filepath.Rel(SanitizePath(base), SanitizePath(target))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"cannot determine relative path from %s to %s", base, target)
	}
	return filepath.ToSlash(rel), nil
}

// escapes reports whether a cleaned relative path climbs above its root
func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
