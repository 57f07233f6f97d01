package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func relPaths(entries []Entry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.RelPath)
	}
	return paths
}

func TestScanCountsFilesAndDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "hi")
	writeFile(t, filepath.Join(root, "sub", "nested", "c.txt"), "x")

	result, err := New(Options{}).Scan(context.Background(), root)
	require.NoError(t, err)

	// 3 files + 2 directories.
	require.Len(t, result.Entries, 5)
	assert.Equal(t, 3, result.Stats.Files)
	assert.Equal(t, 2, result.Stats.Dirs)
	assert.Empty(t, result.Warnings)

	for _, e := range result.Entries {
		if e.Name == "sub" || e.Name == "nested" {
			assert.Equal(t, KindDir, e.Kind, e.RelPath)
		} else {
			assert.Equal(t, KindFile, e.Kind, e.RelPath)
		}
	}
}

func TestScanDepthFirstNameOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "z.txt"), "z")
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "b", "inner.txt"), "i")
	require.NoError(t, os.Mkdir(filepath.Join(root, "b", "empty"), 0o755))

	result, err := New(Options{}).Scan(context.Background(), root)
	require.NoError(t, err)

	want := []string{
		"a.txt",
		"b",
		filepath.Join("b", "empty"),
		filepath.Join("b", "inner.txt"),
		"z.txt",
	}
	assert.Equal(t, want, relPaths(result.Entries))

	// Scanning the same untouched tree again yields the same entries.
	again, err := New(Options{}).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, result.Entries, again.Entries)
}

func TestScanIncludesEmptyDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0o755))

	result, err := New(Options{}).Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, KindDir, result.Entries[0].Kind)
	assert.Equal(t, "empty", result.Entries[0].RelPath)
}

func TestScanRootValidation(t *testing.T) {
	root := t.TempDir()

	_, err := New(Options{}).Scan(context.Background(), filepath.Join(root, "missing"))
	var invalid *InvalidPathError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Path, "missing")

	file := filepath.Join(root, "plain.txt")
	writeFile(t, file, "data")
	_, err = New(Options{}).Scan(context.Background(), file)
	require.ErrorAs(t, err, &invalid)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestScanSymlinkCycleTerminates(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	writeFile(t, filepath.Join(sub, "file.txt"), "data")

	loop := filepath.Join(sub, "loop")
	if err := os.Symlink(root, loop); err != nil {
		t.Skipf("cannot create symlinks on this platform: %v", err)
	}

	result, err := New(Options{}).Scan(context.Background(), root)
	require.NoError(t, err)

	// sub, sub/file.txt, and the link itself; the link target is not
	// expanded, so the scan terminates.
	require.Len(t, result.Entries, 3)

	var link Entry
	for _, e := range result.Entries {
		if e.Name == "loop" {
			link = e
		}
	}
	require.Equal(t, filepath.Join("sub", "loop"), link.RelPath)
	assert.Equal(t, KindFile, link.Kind)
	assert.True(t, link.Symlink)
}

func TestScanPermissionDeniedSubtree(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("running as root bypasses permission checks")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ok.txt"), "fine")
	denied := filepath.Join(root, "denied")
	writeFile(t, filepath.Join(denied, "secret.txt"), "nope")
	require.NoError(t, os.Chmod(denied, 0o000))
	t.Cleanup(func() { _ = os.Chmod(denied, 0o755) })

	result, err := New(Options{}).Scan(context.Background(), root)
	require.NoError(t, err)

	// The denied directory is still listed; its children are not.
	assert.Equal(t, []string{"denied", "ok.txt"}, relPaths(result.Entries))
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0].Path, "denied")
}

func TestScanMaxDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.txt"), "t")
	writeFile(t, filepath.Join(root, "sub", "deep.txt"), "d")

	result, err := New(Options{MaxDepth: 1}).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub", "top.txt"}, relPaths(result.Entries))
}

func TestScanHiddenFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hidden"), "h")
	writeFile(t, filepath.Join(root, ".hiddendir", "inner.txt"), "i")
	writeFile(t, filepath.Join(root, "visible.txt"), "v")

	result, err := New(Options{}).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.txt"}, relPaths(result.Entries))

	result, err = New(Options{IncludeHidden: true}).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, result.Entries, 4)
}

func TestScanExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.go"), "package x")
	writeFile(t, filepath.Join(root, "keep.MD"), "# doc")
	writeFile(t, filepath.Join(root, "drop.txt"), "no")
	writeFile(t, filepath.Join(root, "noext"), "no")
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.txt"), 0o755))

	result, err := New(Options{Extensions: []string{"go", ".md"}}).Scan(context.Background(), root)
	require.NoError(t, err)

	// Directories are never filtered by extension.
	assert.Equal(t, []string{"dir.txt", "keep.MD", "keep.go"}, relPaths(result.Entries))
}

func TestScanCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWarningListBounded(t *testing.T) {
	result := &Result{Stats: Stats{ByExtension: make(map[string]int)}}
	for i := 0; i < maxWarnings+25; i++ {
		result.warn(fmt.Sprintf("/bad/%d", i), errors.New("denied"))
	}
	assert.Len(t, result.Warnings, maxWarnings)
	assert.Equal(t, 25, result.TruncatedWarnings)
}

func TestStatsByExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), "aaaa")
	writeFile(t, filepath.Join(root, "b.GO"), "bb")
	writeFile(t, filepath.Join(root, "c.md"), "c")
	writeFile(t, filepath.Join(root, "noext"), "nn")

	result, err := New(Options{}).Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, int64(9), result.Stats.TotalBytes)
	assert.Equal(t, map[string]int{".go": 2, ".md": 1, "": 1}, result.Stats.ByExtension)
}
