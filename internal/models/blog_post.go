package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Publication states shared by blog posts and projects.
const (
	StatusPublished = "Published"
	StatusDraft     = "Draft"
)

// Tag labels a blog post. Names are unique and compared case-sensitively.
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

// MarshalJSON renders a tag as its bare name.
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Name)
}

// UnmarshalJSON accepts the bare-name form produced by MarshalJSON.
func (t *Tag) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &t.Name)
}

// BlogPostTag links a post to a tag. Position keeps the post's own tag order.
type BlogPostTag struct {
	BlogPostID uint `gorm:"primaryKey"`
	TagID      uint `gorm:"primaryKey;index"`
	Position   int  `gorm:"not null;default:0"`
}

// BlogPost represents an article on the developer blog. Posts are hard
// deleted so a slug can be reused.
type BlogPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Content     string     `gorm:"type:text;not null" json:"content,omitempty"`
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID" json:"author"`
	Status      string     `gorm:"not null;default:Draft;index" json:"status"`
	PublishedAt *time.Time `json:"published_date"`
	ReadTime    string     `json:"read_time"`
	Views       int64      `gorm:"not null;default:0" json:"views"`
	Tags        []Tag      `gorm:"many2many:blog_post_tags" json:"tags"`
	Featured    bool       `gorm:"not null;default:false" json:"featured"`
	ImageURL    string     `json:"image"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsPublished reports whether the post is visible on the public blog.
func (p *BlogPost) IsPublished() bool {
	return p.Status == StatusPublished
}

// TagNames returns the tag names in stored order.
func (p *BlogPost) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// HasTag reports whether the post carries exactly the given tag name.
func (p *BlogPost) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Matches is the blog listing predicate: the title or excerpt contains search
// (case-insensitive) and, when tag is non-empty, the post carries that tag.
func (p *BlogPost) Matches(search, tag string) bool {
	needle := strings.ToLower(search)
	matchesSearch := strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Excerpt), needle)
	matchesTag := tag == "" || p.HasTag(tag)
	return matchesSearch && matchesTag
}

// NewTags builds Tag values from names, dropping blanks and duplicates.
func NewTags(names []string) []Tag {
	seen := make(map[string]struct{}, len(names))
	tags := make([]Tag, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		tags = append(tags, Tag{Name: n})
	}
	return tags
}
