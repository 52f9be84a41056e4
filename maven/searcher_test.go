package maven

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	s := NewSearcher()
	tests := []struct {
		name  string
		query SearchQuery
		want  string
	}{
		{"empty", SearchQuery{}, "*:*"},
		{"text", SearchQuery{Text: "guice"}, "guice"},
		{"group and artifact", SearchQuery{GroupID: "com.google.inject", ArtifactID: "guice"}, "g:com.google.inject AND a:guice"},
		{"class name", SearchQuery{ClassName: "Injector"}, "c:Injector"},
		{"fully qualified class", SearchQuery{FullyQualifiedClassName: "com.google.inject.Injector"}, "fc:com.google.inject.Injector"},
		{"tags", SearchQuery{Tags: "dependency-injection"}, "tags:dependency-injection"},
		{"all artifact fields", SearchQuery{GroupID: "g", ArtifactID: "a", Version: "1", Packaging: "jar", Classifier: "sources"}, "g:g AND a:a AND v:1 AND p:jar AND l:sources"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.buildQuery(tt.query))
		})
	}
}

const searchBody = `{
  "responseHeader": {"status": 0, "QTime": 3},
  "response": {
    "numFound": 1,
    "start": 0,
    "docs": [
      {
        "id": "com.google.inject:guice",
        "g": "com.google.inject",
        "a": "guice",
        "latestVersion": "7.0.0",
        "p": "jar",
        "timestamp": 1683056329000,
        "versionCount": 25,
        "ec": ["-sources.jar", ".jar", ".pom"]
      }
    ]
  }
}`

func newTestSearcher(t *testing.T, handler http.HandlerFunc) *Searcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s := NewSearcher()
	s.BaseURL = srv.URL
	return s
}

func TestSearch(t *testing.T) {
	var gotQuery url.Values
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, searchBody)
	})

	resp, err := s.Search(SearchQuery{ArtifactID: "guice", Rows: 5, Start: 10})
	require.NoError(t, err)

	assert.Equal(t, "a:guice", gotQuery.Get("q"))
	assert.Equal(t, "json", gotQuery.Get("wt"))
	assert.Equal(t, "5", gotQuery.Get("rows"))
	assert.Equal(t, "10", gotQuery.Get("start"))

	assert.Equal(t, 1, resp.Response.NumFound)
	require.Len(t, resp.Response.Docs, 1)
	doc := resp.Response.Docs[0]
	assert.Equal(t, "com.google.inject", doc.GroupID)
	assert.Equal(t, "guice", doc.ArtifactID)
	assert.Equal(t, "7.0.0", doc.LatestVersion)
	assert.Equal(t, 25, doc.VersionCount)
}

func TestSearchDefaultRows(t *testing.T) {
	var gotQuery url.Values
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, searchBody)
	})

	_, err := s.Search(SearchQuery{Text: "guice"})
	require.NoError(t, err)
	assert.Equal(t, "20", gotQuery.Get("rows"))
}

func TestSearchAllVersions(t *testing.T) {
	var gotQuery url.Values
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, searchBody)
	})

	_, err := s.SearchAllVersions("com.google.inject", "guice")
	require.NoError(t, err)

	assert.Equal(t, "g:com.google.inject AND a:guice", gotQuery.Get("q"))
	assert.Equal(t, "gav", gotQuery.Get("core"))
	assert.Equal(t, "100", gotQuery.Get("rows"))
}

func TestSearchServerError(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := s.Search(SearchQuery{Text: "guice"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestNewSearcherEnvOverride(t *testing.T) {
	t.Setenv(EnvSearchURL, "https://search.example/select")
	assert.Equal(t, "https://search.example/select", NewSearcher().BaseURL)

	t.Setenv(EnvSearchURL, "")
	assert.Equal(t, DefaultSearchURL, NewSearcher().BaseURL)
}
