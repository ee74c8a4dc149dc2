package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogPost_Matches(t *testing.T) {
	post := &BlogPost{
		Title:   "MongoDB Performance Optimization",
		Excerpt: "Tips and tricks for optimizing MongoDB queries.",
		Tags:    NewTags([]string{"MongoDB", "Database", "Performance"}),
	}

	tests := []struct {
		name   string
		search string
		tag    string
		want   bool
	}{
		{"empty filters", "", "", true},
		{"title, other case", "mongodb", "", true},
		{"excerpt only", "tricks", "", true},
		{"no match", "kubernetes", "", false},
		{"tag exact", "", "Database", true},
		{"tag is case-sensitive", "", "database", false},
		{"search and tag", "optimiz", "Performance", true},
		{"search ok, tag missing", "optimiz", "CSS", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post.Matches(tt.search, tt.tag))
		})
	}
}

func TestNewTags(t *testing.T) {
	tags := NewTags([]string{" Go ", "", "Go", "go", "Redis"})
	assert.Equal(t, []string{"Go", "go", "Redis"}, (&BlogPost{Tags: tags}).TagNames())
}

func TestTag_JSON(t *testing.T) {
	b, err := json.Marshal(BlogPost{Tags: NewTags([]string{"React"})})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"tags":["React"]`)

	var post BlogPost
	require.NoError(t, json.Unmarshal([]byte(`{"tags":["CSS","Grid"]}`), &post))
	assert.Equal(t, []string{"CSS", "Grid"}, post.TagNames())
}
