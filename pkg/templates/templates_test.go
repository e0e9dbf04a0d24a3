package templates

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"api", "components", "core"}, Names())
}

func TestCoreTemplate(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "core", s.Name)
	assert.Equal(t, []string{
		"app", "lib", "components", "pages/api/auth", "pages/api/data", "public",
	}, s.Directories)

	var paths []string
	for _, f := range s.SortedFiles() {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{
		"app/globals.css",
		"app/layout.tsx",
		"app/page.tsx",
		"lib/biometric.ts",
		"lib/database.ts",
		"lib/encryption.ts",
	}, paths)

	content := s.ContentMap()
	assert.True(t, strings.HasPrefix(content["app/globals.css"], "@tailwind base;"))
	assert.Contains(t, content["lib/encryption.ts"], "AES.encrypt")
	for path, c := range content {
		assert.NotEmpty(t, c, path)
	}
}

func TestComponentsAndAPITemplates(t *testing.T) {
	components, err := Get("components")
	require.NoError(t, err)
	assert.Len(t, components.Files, 5)
	assert.Contains(t, components.ContentMap(), "components/LoginForm.tsx")

	api, err := Get("api")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"pages/api/auth/register.ts",
		"pages/api/auth/login.ts",
		"pages/api/data/save.ts",
		"pages/api/data/list.ts",
		"pages/api/data/delete.ts",
	}, keys(api.ContentMap()))
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("nope")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateNotFound))
}

func TestGet_ReturnsCopy(t *testing.T) {
	s, err := Get("core")
	require.NoError(t, err)
	s.Files[0].Content = "changed"
	s.Directories = nil

	again, err := Get("core")
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again.Files[0].Content)
	assert.Len(t, again.Directories, 6)
}

func TestCompose(t *testing.T) {
	s, err := Compose("core", "components", "api", "core")
	require.NoError(t, err)

	assert.Equal(t, "core+components+api", s.Name)
	assert.Len(t, s.Files, 16)
	// components and pages/api/* are shared and appear once
	assert.Equal(t, []string{
		"app", "lib", "components", "pages/api/auth", "pages/api/data", "public",
	}, s.Directories)
}

func TestMerge_Conflict(t *testing.T) {
	a := &types.Scaffold{Name: "a", Files: []types.FileSpec{{Path: "x/y.txt", Content: "a"}}}
	b := &types.Scaffold{Name: "b", Files: []types.FileSpec{{Path: "x/./y.txt", Content: "b"}}}

	_, err := Merge(a, b)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateConflict))
}

func TestMerge_Empty(t *testing.T) {
	_, err := Merge()
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestInfo(t *testing.T) {
	infos, err := Info()
	require.NoError(t, err)
	require.Len(t, infos, 3)

	core := infos[2]
	assert.Equal(t, "core", core.Name)
	assert.NotEmpty(t, core.Description)
	assert.Equal(t, "app/globals.css", core.Files[0])
}

func TestLoadFrom_BrokenManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"files/bad/manifest.toml": {Data: []byte("[[files]]\npath = \"a\"\n")},
	}
	_, err := loadFrom(fsys, "files")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
