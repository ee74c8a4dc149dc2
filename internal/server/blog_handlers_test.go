package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postTitles(posts []models.BlogPost) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestGetBlogPage_Filters(t *testing.T) {
	env := newTestEnv(t, "")

	tests := []struct {
		name   string
		query  string
		latest []string
		empty  bool
	}{
		{"no filter", "", []string{"MongoDB Performance Optimization", "Modern CSS Grid Layouts", "TypeScript Advanced Types"}, false},
		{"search is case-insensitive", "?search=mongodb", []string{"MongoDB Performance Optimization"}, false},
		{"search matches excerpt", "?search=generics", []string{"TypeScript Advanced Types"}, false},
		{"tag", "?tag=CSS", []string{"Modern CSS Grid Layouts"}, false},
		{"tag is case-sensitive", "?tag=css", []string{}, true},
		{"search and tag", "?search=mongodb&tag=CSS", []string{}, true},
		{"no match", "?search=kubernetes", []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodGet, "/api/blog/page"+tt.query, nil, "")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			page := decode[service.BlogPage](t, resp)

			assert.Equal(t, tt.latest, postTitles(page.Latest))
			assert.Equal(t, tt.empty, page.Empty)
			if tt.empty {
				assert.Equal(t, service.NoArticlesMessage, page.Message)
			}
			// Featured posts ignore the filters.
			assert.ElementsMatch(t, []string{"Building Scalable React Applications", "Node.js Security Best Practices"}, postTitles(page.Featured))
			assert.Contains(t, page.Tags, "MongoDB")
		})
	}
}

func TestListPosts(t *testing.T) {
	env := newTestEnv(t, "")

	resp := env.do(t, http.MethodGet, "/api/blog?tag=Performance", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	posts := decode[[]models.BlogPost](t, resp)
	assert.Equal(t, []string{"Building Scalable React Applications", "MongoDB Performance Optimization"}, postTitles(posts))
	for _, p := range posts {
		assert.Empty(t, p.Content, "listings omit the article body")
	}

	resp = env.do(t, http.MethodGet, "/api/blog?limit=2&offset=1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	posts = decode[[]models.BlogPost](t, resp)
	assert.Equal(t, []string{"MongoDB Performance Optimization", "Modern CSS Grid Layouts"}, postTitles(posts))
}

func TestGetTags(t *testing.T) {
	env := newTestEnv(t, "")

	resp := env.do(t, http.MethodGet, "/api/blog/tags", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tags := decode[[]string](t, resp)
	require.NotEmpty(t, tags)
	assert.Equal(t, "React", tags[0])
	assert.Contains(t, tags, "TypeScript")
}

func TestGetPost(t *testing.T) {
	env := newTestEnv(t, "")
	id := env.postID(t, "Building Scalable React Applications")

	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/blog/%d", id), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decode[service.PostDetail](t, resp)
	assert.Equal(t, int64(1251), detail.Post.Views)
	assert.Contains(t, detail.HTML, "<h2")
	assert.NotEmpty(t, detail.TOC)
	require.Len(t, detail.Related, 1)
	assert.Equal(t, "MongoDB Performance Optimization", detail.Related[0].Title)

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/blog/%d", id), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail = decode[service.PostDetail](t, resp)
	assert.Equal(t, int64(1252), detail.Post.Views)
}

func TestGetPost_Errors(t *testing.T) {
	env := newTestEnv(t, "")

	resp := env.do(t, http.MethodGet, "/api/blog/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[models.ErrorResponse](t, resp)
	assert.Equal(t, "Invalid ID", errResp.Error)

	resp = env.do(t, http.MethodGet, "/api/blog/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSharePost(t *testing.T) {
	env := newTestEnv(t, "")
	id := env.postID(t, "Building Scalable React Applications")

	resp := env.do(t, http.MethodGet, fmt.Sprintf("/api/blog/%d/share", id), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	link := decode[service.ShareLink](t, resp)

	assert.Equal(t, "Building Scalable React Applications", link.Title)
	assert.Equal(t, fmt.Sprintf("https://devconnect.dev/blog/%d", id), link.URL)
	assert.True(t, strings.HasSuffix(link.Text, "..."))
	assert.Equal(t, 103, utf8.RuneCountInString(link.Text))
}
