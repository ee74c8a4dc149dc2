// Package service contains the business logic behind the HTTP handlers.
package service

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"devconnect/internal/markdown"
	"devconnect/internal/models"
	"devconnect/internal/observability"
	"devconnect/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// NoArticlesMessage is shown when the blog listing filters leave nothing.
const NoArticlesMessage = "No articles found matching your criteria."

const (
	maxRelatedPosts  = 2
	shareExcerptLen  = 100
	defaultListLimit = 20
	maxListLimit     = 100
)

type BlogService struct {
	postRepo repository.PostRepository
}

// BlogQuery filters the published post listing.
type BlogQuery struct {
	Search string
	Tag    string
	Limit  int
	Offset int
}

// BlogPage is the data behind the blog index page.
type BlogPage struct {
	Featured []models.BlogPost `json:"featured"`
	Latest   []models.BlogPost `json:"latest"`
	Tags     []string          `json:"tags"`
	Empty    bool              `json:"empty"`
	Message  string            `json:"message,omitempty"`
}

// RelatedPost is a short card linking to another article.
type RelatedPost struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Excerpt  string `json:"excerpt"`
	ReadTime string `json:"read_time"`
	ImageURL string `json:"image"`
}

// PostDetail is a single published article with its rendered body.
type PostDetail struct {
	Post    *models.BlogPost   `json:"post"`
	HTML    string             `json:"html"`
	TOC     []markdown.Heading `json:"toc"`
	Related []RelatedPost      `json:"related"`
}

// ShareLink is the payload handed to a share sheet.
type ShareLink struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

func NewBlogService(postRepo repository.PostRepository) *BlogService {
	return &BlogService{postRepo: postRepo}
}

// List returns published posts matching the query, newest first.
func (s *BlogService) List(ctx context.Context, q BlogQuery) ([]models.BlogPost, error) {
	posts, err := s.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	observability.RecordBlogSearch(q.Search, q.Tag)

	matched := make([]models.BlogPost, 0, len(posts))
	for i := range posts {
		if posts[i].Matches(q.Search, q.Tag) {
			matched = append(matched, summarize(posts[i]))
		}
	}
	return paginate(matched, q.Limit, q.Offset), nil
}

// Page builds the blog index: featured posts are always shown, the remaining
// posts are filtered by search and tag.
func (s *BlogService) Page(ctx context.Context, search, tag string) (*BlogPage, error) {
	posts, err := s.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	observability.RecordBlogSearch(search, tag)

	page := &BlogPage{
		Featured: []models.BlogPost{},
		Latest:   []models.BlogPost{},
		Tags:     distinctTags(posts),
	}
	for i := range posts {
		p := posts[i]
		if p.Featured {
			page.Featured = append(page.Featured, summarize(p))
			continue
		}
		if p.Matches(search, tag) {
			page.Latest = append(page.Latest, summarize(p))
		}
	}
	if len(page.Latest) == 0 {
		page.Empty = true
		page.Message = NoArticlesMessage
	}
	return page, nil
}

// Tags returns the distinct tags of published posts in first-appearance order.
func (s *BlogService) Tags(ctx context.Context) ([]string, error) {
	posts, err := s.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	return distinctTags(posts), nil
}

// Get returns a published post rendered to HTML and counts the read.
func (s *BlogService) Get(ctx context.Context, id uint) (*PostDetail, error) {
	ctx, span := observability.StartSpan(ctx, "BlogService", "Get", attribute.Int64("post.id", int64(id)))
	defer span.End()

	post, err := s.publishedPost(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := markdown.Render(post.Content)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.postRepo.IncrementViews(ctx, post.ID); err != nil {
		slog.WarnContext(ctx, "failed to count post view", "post_id", post.ID, "err", err)
	} else {
		post.Views++
		observability.PostViews.Inc()
	}

	related, err := s.related(ctx, post)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Post:    post,
		HTML:    doc.HTML,
		TOC:     doc.TOC,
		Related: related,
	}, nil
}

// Share builds the share payload for a published post.
func (s *BlogService) Share(ctx context.Context, id uint, baseURL string) (*ShareLink, error) {
	post, err := s.publishedPost(ctx, id)
	if err != nil {
		return nil, err
	}
	text := []rune(post.Content)
	if len(text) > shareExcerptLen {
		text = text[:shareExcerptLen]
	}
	return &ShareLink{
		Title: post.Title,
		Text:  string(text) + "...",
		URL:   strings.TrimRight(baseURL, "/") + "/blog/" + strconv.FormatUint(uint64(post.ID), 10),
	}, nil
}

func (s *BlogService) publishedPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

// related picks published posts sharing the most tags with post.
func (s *BlogService) related(ctx context.Context, post *models.BlogPost) ([]RelatedPost, error) {
	posts, err := s.postRepo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		post    models.BlogPost
		overlap int
	}
	var candidates []candidate
	for _, p := range posts {
		if p.ID == post.ID {
			continue
		}
		n := 0
		for _, t := range p.Tags {
			if post.HasTag(t.Name) {
				n++
			}
		}
		if n > 0 {
			candidates = append(candidates, candidate{post: p, overlap: n})
		}
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return b.overlap - a.overlap
	})

	out := make([]RelatedPost, 0, maxRelatedPosts)
	for _, c := range candidates {
		if len(out) == maxRelatedPosts {
			break
		}
		out = append(out, RelatedPost{
			ID:       c.post.ID,
			Title:    c.post.Title,
			Slug:     c.post.Slug,
			Excerpt:  c.post.Excerpt,
			ReadTime: c.post.ReadTime,
			ImageURL: c.post.ImageURL,
		})
	}
	return out, nil
}

// summarize drops the body from listing entries.
func summarize(p models.BlogPost) models.BlogPost {
	p.Content = ""
	return p
}

func distinctTags(posts []models.BlogPost) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t.Name]; ok {
				continue
			}
			seen[t.Name] = struct{}{}
			tags = append(tags, t.Name)
		}
	}
	return tags
}

func paginate[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}
