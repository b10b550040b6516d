package bundler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Devon-White/code-bundler/internal/config"
)

func setupDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func readBundle(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestBundleDirPlain(t *testing.T) {
	dir := setupDir(t, map[string]string{"y.cs": "B", "x.cs": "A"})
	out := filepath.Join(dir, "out.txt")

	res := BundleDir(dir, config.BundleConfig{Output: out, Language: "all"})
	require.True(t, res.OK(), res.Message())

	assert.Equal(t, "out.txt", res.Output)
	assert.Equal(t, "File 'out.txt' was created", res.Message())
	assert.Equal(t, "A\nB\n", readBundle(t, out))
}

func TestBundleDirAuthor(t *testing.T) {
	dir := setupDir(t, map[string]string{"y.cs": "B", "x.cs": "A"})
	out := filepath.Join(dir, "out.txt")

	res := BundleDir(dir, config.BundleConfig{Output: out, Language: "all", Author: "Dan"})
	require.True(t, res.OK(), res.Message())

	got := readBundle(t, out)
	assert.Equal(t, "# Author: Dan", strings.SplitN(got, "\n", 2)[0])
	assert.Equal(t, "# Author: Dan\nA\nB\n", got)
}

func TestBundleDirRemoveEmptyLines(t *testing.T) {
	dir := setupDir(t, map[string]string{"a.cs": "A\n\nB"})
	out := filepath.Join(t.TempDir(), "out.txt")

	res := BundleDir(dir, config.BundleConfig{Output: out, Language: "cs", RemoveEmptyLines: true})
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, "A\nB\n", readBundle(t, out))

	res = BundleDir(dir, config.BundleConfig{Output: out, Language: "cs"})
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, "A\n\nB\n", readBundle(t, out))
}

func TestBundleDirNoteUsesOutputPath(t *testing.T) {
	dir := setupDir(t, map[string]string{"a.go": "package a", "b.go": "package b"})
	out := filepath.Join(t.TempDir(), "bundle.txt")

	res := BundleDir(dir, config.BundleConfig{Output: out, Language: "go", Note: true})
	require.True(t, res.OK(), res.Message())

	assert.Equal(t, out+"\npackage a\n"+out+"\npackage b\n", readBundle(t, out))
}

func TestBundleDirSortAndFilter(t *testing.T) {
	dir := setupDir(t, map[string]string{
		"b.cs":      "b",
		"a.txt":     "a",
		"c.cs":      "c",
		"binder.cs": "binder",
	})
	out := filepath.Join(t.TempDir(), "out.txt")

	res := BundleDir(dir, config.BundleConfig{Output: out, Language: "all", Sort: config.ByExtension})
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, "b\nbinder\nc\na\n", readBundle(t, out))

	res = BundleDir(dir, config.BundleConfig{Output: out, Language: "cs"})
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, "b\nc\n", readBundle(t, out))
}

func TestBundleDirTruncatesExistingOutput(t *testing.T) {
	dir := setupDir(t, map[string]string{"a.cs": "A"})
	out := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(out, []byte("old content that is longer"), 0644))

	res := BundleDir(dir, config.BundleConfig{Output: out, Language: "cs"})
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, "A\n", readBundle(t, out))
}

func TestBundleDirSkipsItsOwnOutput(t *testing.T) {
	dir := setupDir(t, map[string]string{"a.txt": "A", "out.txt": "stale bundle"})
	out := filepath.Join(dir, "out.txt")

	res := BundleDir(dir, config.BundleConfig{Output: out, Language: "txt"})
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, "A\n", readBundle(t, out))
}

func TestBundleDirHTMLToMarkdown(t *testing.T) {
	dir := setupDir(t, map[string]string{
		"page.html": `<html><body><nav>menu</nav><h1>Title</h1><p>Some <em>text</em></p></body></html>`,
	})
	out := filepath.Join(t.TempDir(), "out.md")

	res := BundleDir(dir, config.BundleConfig{Output: out, Language: "html", HTMLToMarkdown: true})
	require.True(t, res.OK(), res.Message())

	got := readBundle(t, out)
	assert.Contains(t, got, "# Title")
	assert.NotContains(t, got, "<p>")
	assert.NotContains(t, got, "menu")
}

func TestBundleDirHTMLTitleHeading(t *testing.T) {
	dir := setupDir(t, map[string]string{
		"a.htm":  `<html><head><title>Setup</title></head><body><p>steps</p></body></html>`,
		"b.html": `<ul><li>one</li></ul><pre>code</pre><pre>more</pre>`,
		"c.txt":  "<p>plain text stays</p>",
	})
	out := filepath.Join(t.TempDir(), "out.md")

	res := BundleDir(dir, config.BundleConfig{Output: out, Language: "all", HTMLToMarkdown: true})
	require.True(t, res.OK(), res.Message())

	got := readBundle(t, out)
	assert.True(t, strings.HasPrefix(got, "# Setup\n\nsteps\n"), got)
	assert.Contains(t, got, "- one")
	assert.True(t, strings.HasSuffix(got, "<p>plain text stays</p>\n"), got)
}

func TestBundleDirInvalidDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	res := BundleDir(filepath.Join(t.TempDir(), "missing"), config.BundleConfig{Output: out, Language: "all"})

	assert.False(t, res.OK())
	assert.Equal(t, KindInvalidDirectory, res.Kind)
	assert.Equal(t, "Error: File path is invalid", res.Message())
	assert.NoFileExists(t, out)
}

func TestBundleDirMissingOutputDirectory(t *testing.T) {
	dir := setupDir(t, map[string]string{"a.cs": "A"})

	t.Run("parent missing", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "missing", "out.txt")

		res := BundleDir(dir, config.BundleConfig{Output: out, Language: "cs"})

		assert.Equal(t, KindInvalidDirectory, res.Kind)
		assert.ErrorIs(t, res.Err, ErrOutputDirNotFound)
		assert.Equal(t, "Error: File path is invalid", res.Message())
		assert.NoFileExists(t, out)
	})

	t.Run("parent is a file", func(t *testing.T) {
		out := filepath.Join(dir, "a.cs", "out.txt")

		res := BundleDir(dir, config.BundleConfig{Output: out, Language: "cs"})

		assert.Equal(t, KindInvalidDirectory, res.Kind)
		assert.ErrorIs(t, res.Err, ErrOutputDirNotFound)
	})
}

func TestBundleDirUnexpectedError(t *testing.T) {
	dir := setupDir(t, map[string]string{"a.cs": "A"})
	out := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.Mkdir(out, 0755))

	res := BundleDir(dir, config.BundleConfig{Output: out, Language: "cs"})

	assert.Equal(t, KindUnexpected, res.Kind)
	assert.True(t, strings.HasPrefix(res.Message(), "An unexpected error occurred: writing taken: "), res.Message())
	assert.DirExists(t, out)
}

func TestBundleUsesWorkingDirectory(t *testing.T) {
	dir := setupDir(t, map[string]string{"x.cs": "A", "y.cs": "B"})
	t.Chdir(dir)

	res := Bundle(config.BundleConfig{Output: "out.txt", Language: "all"})
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, "A\nB\n", readBundle(t, filepath.Join(dir, "out.txt")))
}

func TestResultMessage(t *testing.T) {
	r := Result{Kind: KindUnexpected, Err: errors.New("disk full")}
	assert.Equal(t, "An unexpected error occurred: disk full", r.Message())
	assert.Equal(t, "unexpected", r.Kind.String())
}
