package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jclass/internal/testutil"
)

func waitForScan(t *testing.T, s *Scanner, id string) *Result {
	t.Helper()
	var result *Result
	require.Eventually(t, func() bool {
		r, ok := s.Get(id)
		if !ok || (r.Status != StatusCompleted && r.Status != StatusFailed) {
			return false
		}
		result = r
		return true
	}, 5*time.Second, 10*time.Millisecond)
	return result
}

func classNames(result *Result) []string {
	names := make([]string, 0, len(result.Classes))
	for _, c := range result.Classes {
		names = append(names, c.Name)
	}
	return names
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Foo.class"), testutil.ClassBytes("com/example/Foo"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.jar"), testutil.JarBytes(map[string][]byte{
		"com/example/Bar.class": testutil.ClassBytes("com/example/Bar"),
	}), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	s := New()
	id := s.Submit(Request{Path: dir})
	result := waitForScan(t, s, id)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Empty(t, result.Errors)
	assert.ElementsMatch(t, []string{"com.example.Foo", "com.example.Bar"}, classNames(result))
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, result.Total, result.Progress)
}

func TestScanArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.jar")
	require.NoError(t, os.WriteFile(path, testutil.JarBytes(map[string][]byte{
		"com/example/One.class": testutil.ClassBytes("com/example/One"),
		"com/example/Two.class": testutil.ClassBytes("com/example/Two"),
		"META-INF/MANIFEST.MF":  []byte("Manifest-Version: 1.0\n"),
	}), 0o644))

	s := New()
	id := s.Submit(Request{Archive: path})
	result := waitForScan(t, s, id)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.ElementsMatch(t, []string{"com.example.One", "com.example.Two"}, classNames(result))
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Progress)
}

func TestScanFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Foo.class")
	require.NoError(t, os.WriteFile(path, testutil.ClassBytes("com/example/Foo"), 0o644))

	s := New()
	id := s.Submit(Request{ClassFiles: []string{path}})
	result := waitForScan(t, s, id)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, []string{"com.example.Foo"}, classNames(result))
}

func TestScanReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Good.class"), testutil.ClassBytes("com/example/Good"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad.class"), []byte("not a class file"), 0o644))

	s := New()
	id := s.Submit(Request{Path: dir})
	result := waitForScan(t, s, id)

	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, []string{"com.example.Good"}, classNames(result))
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Bad.class")
}

func TestScanFailsWhenNothingParses(t *testing.T) {
	s := New()
	id := s.Submit(Request{Archive: filepath.Join(t.TempDir(), "missing.jar")})
	result := waitForScan(t, s, id)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Error, "missing.jar")
}

func TestScanEmptyRequest(t *testing.T) {
	s := New()
	id := s.Submit(Request{})
	result := waitForScan(t, s, id)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "no path, class files, or archive provided", result.Error)
}

func TestAllClassesAndFindClass(t *testing.T) {
	dir := t.TempDir()
	fooPath := filepath.Join(dir, "Foo.class")
	barPath := filepath.Join(dir, "Bar.class")
	require.NoError(t, os.WriteFile(fooPath, testutil.ClassBytes("com/example/Foo"), 0o644))
	require.NoError(t, os.WriteFile(barPath, testutil.ClassBytes("com/example/Bar"), 0o644))

	s := New()
	waitForScan(t, s, s.Submit(Request{ClassFiles: []string{fooPath}}))
	waitForScan(t, s, s.Submit(Request{ClassFiles: []string{barPath}}))

	all := s.AllClasses()
	require.Len(t, all, 2)
	assert.Equal(t, "com.example.Bar", all[0].Name)
	assert.Equal(t, "com.example.Foo", all[1].Name)

	found := s.FindClass("com.example.Foo")
	require.NotNil(t, found)
	assert.Equal(t, "Foo", found.SimpleName)
	assert.Nil(t, s.FindClass("com.example.Missing"))
}

func TestListOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Foo.class")
	require.NoError(t, os.WriteFile(path, testutil.ClassBytes("com/example/Foo"), 0o644))

	s := New()
	waitForScan(t, s, s.Submit(Request{ClassFiles: []string{path}}))
	waitForScan(t, s, s.Submit(Request{ClassFiles: []string{path}}))

	results := s.List()
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0].ID)
	assert.Equal(t, "2", results[1].ID)
}

func TestGetUnknownScan(t *testing.T) {
	s := New()
	_, ok := s.Get("42")
	assert.False(t, ok)
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0, (&Result{}).ProgressPercent())
	assert.Equal(t, 25, (&Result{Progress: 1, Total: 4}).ProgressPercent())
	assert.Equal(t, 100, (&Result{Progress: 4, Total: 4}).ProgressPercent())
}
