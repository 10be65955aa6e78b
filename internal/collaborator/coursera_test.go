package collaborator

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<div data-testid="search-result-card">
  <a href="/learn/python-basics"><h3>Python for Everybody</h3></a>
  <p>Learn Python from scratch</p>
  <span>4.8 stars</span>
</div>
<div data-testid="search-result-card">
  <a href="/learn/python-data"><h3>Python Data Structures</h3></a>
  <p>Lists, dicts and tuples</p>
</div>
<div data-testid="search-result-card">
  <a href="/learn/python-web"><h3>Web Scraping in Python</h3></a>
</div>
<div data-testid="search-result-card">
  <a href="/learn/python-extra"><h3>Fourth Course</h3></a>
</div>
</body></html>`

const fallbackPage = `<html><body>
<nav><a href="/about">About</a></nav>
<a href="/learn/go-fundamentals">Go Fundamentals</a>
<a href="/learn/go-concurrency">Concurrency in Go</a>
</body></html>`

func TestCourseraSearcher(t *testing.T) {
	t.Run("parses result cards capped at three", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Python", r.URL.Query().Get("query"))
			assert.Equal(t, "Beginner", r.URL.Query().Get("productDifficultyLevel"))
			assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
			fmt.Fprint(w, searchPage)
		}))
		defer srv.Close()

		searcher := NewCourseraSearcher(srv.URL, time.Second)
		results, err := searcher.SearchCourses(context.Background(), "Python", "beginner")
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, "Python for Everybody", results[0].Title)
		assert.Equal(t, srv.URL+"/learn/python-basics", results[0].URL)
		assert.Equal(t, "Learn Python from scratch", results[0].Description)
		assert.Equal(t, 4.8, results[0].Rating)
	})

	t.Run("level maps to difficulty param", func(t *testing.T) {
		var gotLevel string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotLevel = r.URL.Query().Get("productDifficultyLevel")
			fmt.Fprint(w, "<html></html>")
		}))
		defer srv.Close()

		searcher := NewCourseraSearcher(srv.URL, time.Second)
		_, err := searcher.SearchCourses(context.Background(), "SQL", "advanced")
		require.NoError(t, err)
		assert.Equal(t, "Advanced", gotLevel)
	})

	t.Run("falls back to course links", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, fallbackPage)
		}))
		defer srv.Close()

		searcher := NewCourseraSearcher(srv.URL, time.Second)
		results, err := searcher.SearchCourses(context.Background(), "Go", "intermediate")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Go Fundamentals", results[0].Title)
		assert.Equal(t, srv.URL+"/learn/go-fundamentals", results[0].URL)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		searcher := NewCourseraSearcher(srv.URL, time.Second)
		_, err := searcher.SearchCourses(context.Background(), "Go", "beginner")
		assert.Error(t, err)
	})

	t.Run("empty page yields empty results", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><body>No results</body></html>")
		}))
		defer srv.Close()

		searcher := NewCourseraSearcher(srv.URL, time.Second)
		results, err := searcher.SearchCourses(context.Background(), "Cobol", "beginner")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
