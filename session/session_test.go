package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, s *Session, path, content string) string {
	t.Helper()
	f, err := s.Open(path)
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestOpenWritesUnderRoot(t *testing.T) {
	root := t.TempDir()
	s, err := New(Options{Root: root})
	require.NoError(t, err)

	name := write(t, s, "widget.h", "// widget")
	assert.Equal(t, filepath.Join(root, "widget.h"), name)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "// widget", string(data))
}

func TestConflictRename(t *testing.T) {
	root := t.TempDir()
	s, err := New(Options{Root: root, OnConflict: RenameOnConflict})
	require.NoError(t, err)

	first := write(t, s, "widget.h", "one")
	second := write(t, s, "widget.h", "two")
	third := write(t, s, "widget.h", "three")

	assert.Equal(t, filepath.Join(root, "widget.h"), first)
	assert.Equal(t, filepath.Join(root, "widget_2.h"), second)
	assert.Equal(t, filepath.Join(root, "widget_3.h"), third)
}

func TestConflictError(t *testing.T) {
	root := t.TempDir()
	s, err := New(Options{Root: root, OnConflict: ErrorOnConflict})
	require.NoError(t, err)

	write(t, s, "widget.h", "one")
	_, err = s.Open("widget.h")
	assert.ErrorContains(t, err, "already written")
}

func TestFilenameCapPreservesExtension(t *testing.T) {
	root := t.TempDir()
	s, err := New(Options{Root: root})
	require.NoError(t, err)

	long := strings.Repeat("a", 300) + ".h"
	name := write(t, s, long, "x")

	base := filepath.Base(name)
	assert.Len(t, base, 150)
	assert.True(t, strings.HasSuffix(base, ".h"))
}

func TestConflictRenameOfCappedFilename(t *testing.T) {
	root := t.TempDir()
	s, err := New(Options{Root: root, OnConflict: RenameOnConflict})
	require.NoError(t, err)

	// An over-cap name truncates to the same 150-char path every time,
	// so the rename must shorten the stem to fit the numeric suffix.
	long := strings.Repeat("a", 200) + ".h"
	first := write(t, s, long, "one")
	second := write(t, s, long, "two")
	third := write(t, s, long, "three")

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, second, third)
	for i, name := range []string{second, third} {
		base := filepath.Base(name)
		assert.LessOrEqual(t, len(base), 150)
		assert.True(t, strings.HasSuffix(base, "_"+string(rune('2'+i))+".h"), base)
	}
}

func TestFailedOpenReleasesPath(t *testing.T) {
	root := t.TempDir()
	s, err := New(Options{Root: root, OnConflict: RenameOnConflict})
	require.NoError(t, err)

	// A regular file where the parent directory should go makes the
	// create fail; the path must not stay reserved or reach the
	// manifest.
	blocker := filepath.Join(root, "pkg")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	_, err = s.Open("pkg/gen.h")
	require.Error(t, err)

	require.NoError(t, os.Remove(blocker))
	name := write(t, s, "pkg/gen.h", "ok")
	assert.Equal(t, filepath.Join(root, "pkg", "gen.h"), name)

	require.NoError(t, s.Finish())
	data, err := os.ReadFile(filepath.Join(root, DefaultManifestName))
	require.NoError(t, err)
	assert.Equal(t, "pkg/gen.h\n", string(data))
}

func TestRejectsEscapingPaths(t *testing.T) {
	s, err := New(Options{Root: t.TempDir()})
	require.NoError(t, err)

	_, err = s.Open("../outside.h")
	assert.Error(t, err)
	_, err = s.Open("/etc/outside.h")
	assert.Error(t, err)
}

func TestManifestGarbageCollection(t *testing.T) {
	root := t.TempDir()

	s1, err := New(Options{Root: root})
	require.NoError(t, err)
	write(t, s1, "keep.h", "keep")
	write(t, s1, "stale.h", "stale")
	require.NoError(t, s1.Finish())

	// Second run regenerates only keep.h; stale.h must be deleted.
	s2, err := New(Options{Root: root})
	require.NoError(t, err)
	write(t, s2, "keep.h", "keep again")
	require.NoError(t, s2.Finish())

	_, err = os.Stat(filepath.Join(root, "keep.h"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "stale.h"))
	assert.True(t, os.IsNotExist(err))
}

func TestManifestListsWrittenPaths(t *testing.T) {
	root := t.TempDir()
	s, err := New(Options{Root: root})
	require.NoError(t, err)
	write(t, s, "b.h", "b")
	write(t, s, "a.h", "a")
	require.NoError(t, s.Finish())

	data, err := os.ReadFile(filepath.Join(root, DefaultManifestName))
	require.NoError(t, err)
	assert.Equal(t, "a.h\nb.h\n", string(data))
}

func TestFinishTwiceFails(t *testing.T) {
	s, err := New(Options{Root: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, s.Finish())
	assert.Error(t, s.Finish())
}

func TestCopyFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(t.TempDir(), "native.h")
	require.NoError(t, os.WriteFile(src, []byte("// native"), 0o644))

	s, err := New(Options{Root: root})
	require.NoError(t, err)

	rel, err := s.CopyFile(src)
	require.NoError(t, err)
	assert.Equal(t, "native.h", rel)

	rel, err = s.CopyFile(src, "include/native.h")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("include", "native.h"), rel)

	data, err := os.ReadFile(filepath.Join(root, "include", "native.h"))
	require.NoError(t, err)
	assert.Equal(t, "// native", string(data))
}
