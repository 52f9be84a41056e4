package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/jclass/internal/testutil"
	"github.com/dhamidi/jclass/java/scanner"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	t.Setenv("JAVA_SRC", "")
	s, err := NewServer()
	require.NoError(t, err)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return s, srv
}

func waitForScan(t *testing.T, s *Server, id string) *scanner.Result {
	t.Helper()
	var result *scanner.Result
	require.Eventually(t, func() bool {
		r, ok := s.scanner.Get(id)
		if !ok {
			return false
		}
		result = r
		return r.Status == scanner.StatusCompleted || r.Status == scanner.StatusFailed
	}, 5*time.Second, 10*time.Millisecond)
	return result
}

func writeClass(t *testing.T, dir, name, internalName string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, testutil.ClassBytes(internalName), 0o644))
	return path
}

func indexClasses(t *testing.T, s *Server, paths ...string) {
	t.Helper()
	id := s.scanner.Submit(scanner.Request{ClassFiles: paths})
	result := waitForScan(t, s, id)
	require.Equal(t, scanner.StatusCompleted, result.Status)
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

func TestScanFormSubmission(t *testing.T) {
	s, srv := newTestServer(t)

	dir := t.TempDir()
	writeClass(t, dir, "Foo.class", "com/example/Foo")

	resp, err := srv.Client().PostForm(srv.URL+"/scan", url.Values{"path": {dir}})
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Request.URL.Path, "/scans/"))
	assert.Contains(t, string(body), "Scan")

	id := strings.TrimPrefix(resp.Request.URL.Path, "/scans/")
	result := waitForScan(t, s, id)
	require.Equal(t, scanner.StatusCompleted, result.Status)
	require.Len(t, result.Classes, 1)
	assert.Equal(t, "com.example.Foo", result.Classes[0].Name)
}

func TestScanArchiveUpload(t *testing.T) {
	s, srv := newTestServer(t)

	jarData := testutil.JarBytes(map[string][]byte{
		"com/example/Packed.class": testutil.ClassBytes("com/example/Packed"),
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("zipfile", "app.jar")
	require.NoError(t, err)
	_, err = fw.Write(jarData)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := srv.Client().Post(srv.URL+"/scan", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	id := strings.TrimPrefix(resp.Request.URL.Path, "/scans/")
	result := waitForScan(t, s, id)
	require.Equal(t, scanner.StatusCompleted, result.Status)
	require.Len(t, result.Classes, 1)
	assert.Equal(t, "com.example.Packed", result.Classes[0].Name)
}

func TestScanJSONSubmission(t *testing.T) {
	s, srv := newTestServer(t)

	dir := t.TempDir()
	writeClass(t, dir, "Foo.class", "com/example/Foo")

	payload, err := json.Marshal(scanner.Request{Path: dir})
	require.NoError(t, err)

	resp, err := srv.Client().Post(srv.URL+"/scan", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	id := strings.TrimPrefix(resp.Request.URL.Path, "/scans/")
	result := waitForScan(t, s, id)
	assert.Equal(t, scanner.StatusCompleted, result.Status)
}

func TestScanRejectsEmptyRequest(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := srv.Client().PostForm(srv.URL+"/scan", url.Values{})
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "must provide path, class_files, or zipfile")
}

func TestGetScanJSON(t *testing.T) {
	s, srv := newTestServer(t)

	dir := t.TempDir()
	foo := writeClass(t, dir, "Foo.class", "com/example/Foo")
	indexClasses(t, s, foo)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/scans/1", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var result scanner.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, scanner.StatusCompleted, result.Status)
	require.Len(t, result.Classes, 1)
	assert.Equal(t, "com.example.Foo", result.Classes[0].Name)
}

func TestGetScanNotFound(t *testing.T) {
	_, srv := newTestServer(t)
	resp, _ := get(t, srv, "/scans/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClassPage(t *testing.T) {
	s, srv := newTestServer(t)

	dir := t.TempDir()
	foo := writeClass(t, dir, "Foo.class", "com/example/Foo")
	indexClasses(t, s, foo)

	resp, body := get(t, srv, "/c/com.example.Foo")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Foo")
	assert.Contains(t, body, "com.example")
	assert.Contains(t, body, "class file version 52.0")
}

func TestClassPageNotFound(t *testing.T) {
	s, srv := newTestServer(t)

	dir := t.TempDir()
	foo := writeClass(t, dir, "Foo.class", "com/example/Foo")
	indexClasses(t, s, foo)

	resp, _ := get(t, srv, "/c/com.example.Missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClassPageFiltersSidebar(t *testing.T) {
	s, srv := newTestServer(t)

	dir := t.TempDir()
	foo := writeClass(t, dir, "Foo.class", "com/example/Foo")
	bar := writeClass(t, dir, "Bar.class", "com/example/Bar")
	indexClasses(t, s, foo, bar)

	resp, body := get(t, srv, "/c/?q=foo")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `href="/c/com.example.Foo?q=foo"`)
	assert.NotContains(t, body, "com.example.Bar")
}

func TestSidebarFragment(t *testing.T) {
	s, srv := newTestServer(t)

	dir := t.TempDir()
	foo := writeClass(t, dir, "Foo.class", "com/example/Foo")
	bar := writeClass(t, dir, "Bar.class", "com/example/Bar")
	indexClasses(t, s, foo, bar)

	resp, body := get(t, srv, "/sidebar?q=bar&active=com.example.Bar")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "com.example.Bar")
	assert.NotContains(t, body, "com.example.Foo")
	assert.Contains(t, body, `class="active"`)
}

func TestIndexShowsScanForm(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `action="/scan"`)
	assert.Contains(t, body, "zipfile")
}

func TestIndexRedirectsToBrowser(t *testing.T) {
	s, srv := newTestServer(t)

	dir := t.TempDir()
	foo := writeClass(t, dir, "Foo.class", "com/example/Foo")
	indexClasses(t, s, foo)

	resp, body := get(t, srv, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/c/", resp.Request.URL.Path)
	assert.Contains(t, body, "com.example")
}

func TestStaticAssets(t *testing.T) {
	_, srv := newTestServer(t)

	resp, body := get(t, srv, "/static/style.css")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".sidebar")
}
