package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, name := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("pass\n"), 0o600))
	}
}

func rel(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscoverDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"main.py",
		"README.md",
		"pkg/b.py",
		"pkg/a.py",
		"pkg/stub.pyi",
		"pkg/sub/deep.py",
		"venv/lib/site.py",
		"build/gen_test.py",
		"tests/test_main.py",
	)

	tests := []struct {
		name      string
		discovery Discovery
		want      []string
	}{
		{
			name:      "python files in lexical order",
			discovery: Discovery{Extensions: []string{".py"}},
			want: []string{
				"build/gen_test.py", "main.py", "pkg/a.py", "pkg/b.py",
				"pkg/sub/deep.py", "tests/test_main.py", "venv/lib/site.py",
			},
		},
		{
			name:      "several extensions",
			discovery: Discovery{Extensions: []string{".py", ".pyi"}, Exclude: []string{"venv", "build/**", "tests"}},
			want:      []string{"main.py", "pkg/a.py", "pkg/b.py", "pkg/stub.pyi", "pkg/sub/deep.py"},
		},
		{
			name:      "base name pattern",
			discovery: Discovery{Extensions: []string{".py"}, Exclude: []string{"*_test.py", "test_*.py", "venv"}},
			want:      []string{"main.py", "pkg/a.py", "pkg/b.py", "pkg/sub/deep.py"},
		},
		{
			name:      "double star patterns",
			discovery: Discovery{Extensions: []string{".py"}, Exclude: []string{"**/deep.py", "pkg/**/b.py", "venv/**"}},
			want:      []string{"build/gen_test.py", "main.py", "pkg/a.py", "tests/test_main.py"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := tt.discovery.Discover(root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, root, files))
		})
	}
}

func TestDiscoverFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "script")

	d := Discovery{Extensions: []string{".py"}}
	files, err := d.Discover(filepath.Join(root, "script"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "script")}, files)
}

func TestDiscoverMissing(t *testing.T) {
	d := Discovery{Extensions: []string{".py"}}
	_, err := d.Discover(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverAll(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.py", "sub/b.py")

	d := Discovery{Extensions: []string{".py"}}
	files, err := d.DiscoverAll([]string{filepath.Join(root, "sub"), root, filepath.Join(root, "a.py")})
	require.NoError(t, err)
	assert.Equal(t, []string{"sub/b.py", "a.py"}, rel(t, root, files))
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		pattern string
		rel     string
		want    bool
	}{
		{"venv", "venv", true},
		{"venv", "lib/venv", true},
		{"*.py", "pkg/a.py", true},
		{"pkg/*.py", "pkg/a.py", true},
		{"pkg/*.py", "pkg/sub/a.py", false},
		{"build/**", "build", true},
		{"build/**", "build/x/y.py", true},
		{"build/**", "builder/y.py", false},
		{"**/migrations", "app/db/migrations", true},
		{"**/*.py", "a/b/c.py", true},
		{"src/**/gen.py", "src/a/b/gen.py", true},
		{"src/**/gen.py", "other/a/gen.py", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchGlob(tt.pattern, tt.rel), "%s ~ %s", tt.pattern, tt.rel)
	}
}
