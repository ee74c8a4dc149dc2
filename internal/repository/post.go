package repository

import (
	"context"
	"errors"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for blog post data operations
type PostRepository interface {
	ListPublished(ctx context.Context) ([]models.BlogPost, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]models.BlogPost, error)
	GetByID(ctx context.Context, id uint) (*models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	CountPublished(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new blog post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func withPostDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Author")
}

type postTagRow struct {
	BlogPostID uint
	TagID      uint
	Name       string
}

// attachTags loads the tags of posts in each post's own order.
func attachTags(db *gorm.DB, posts []models.BlogPost) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	index := make(map[uint]int, len(posts))
	for i := range posts {
		ids = append(ids, posts[i].ID)
		index[posts[i].ID] = i
		posts[i].Tags = []models.Tag{}
	}

	var rows []postTagRow
	err := db.Table("blog_post_tags").
		Select("blog_post_tags.blog_post_id, tags.id AS tag_id, tags.name").
		Joins("JOIN tags ON tags.id = blog_post_tags.tag_id").
		Where("blog_post_tags.blog_post_id IN ?", ids).
		Order("blog_post_tags.blog_post_id").
		Order("blog_post_tags.position").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	for _, row := range rows {
		i := index[row.BlogPostID]
		posts[i].Tags = append(posts[i].Tags, models.Tag{ID: row.TagID, Name: row.Name})
	}
	return nil
}

// linkTags replaces the post's tag links, numbering them in slice order.
func linkTags(tx *gorm.DB, postID uint, tags []models.Tag) error {
	if err := tx.Where("blog_post_id = ?", postID).Delete(&models.BlogPostTag{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}
	links := make([]models.BlogPostTag, 0, len(tags))
	for i, t := range tags {
		links = append(links, models.BlogPostTag{BlogPostID: postID, TagID: t.ID, Position: i})
	}
	return tx.Create(&links).Error
}

func (r *postRepository) first(ctx context.Context, key any, query *gorm.DB) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", key)
		}
		return nil, models.NewInternalError(err)
	}
	posts := []models.BlogPost{post}
	if err := attachTags(r.db.WithContext(ctx), posts); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &posts[0], nil
}

// ListPublished returns every published post, newest first. The result is
// cached until a post is written.
func (r *postRepository) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := cache.Aside(ctx, cache.PublishedPostsKey, &posts, cache.PublishedPostsTTL, func() error {
		defer observability.TrackQuery("list_published", "blog_posts")()
		err := withPostDetails(r.db.WithContext(ctx)).
			Where("status = ?", models.StatusPublished).
			Order("published_at DESC").
			Order("id DESC").
			Find(&posts).Error
		if err != nil {
			return err
		}
		return attachTags(r.db.WithContext(ctx), posts)
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := withPostDetails(r.db.WithContext(ctx)).
		Where("author_id = ?", authorID).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err == nil {
		err = attachTags(r.db.WithContext(ctx), posts)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	return r.first(ctx, id, withPostDetails(r.db.WithContext(ctx)).Where("id = ?", id))
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	return r.first(ctx, slug, withPostDetails(r.db.WithContext(ctx)).Where("slug = ?", slug))
}

// Create inserts the post and links its tags, creating tag rows that do not exist yet.
func (r *postRepository) Create(ctx context.Context, post *models.BlogPost) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, post.Tags)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		post.Tags = tags
		return linkTags(tx, post.ID, tags)
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A post with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePublishedPosts(ctx)
	return nil
}

// Update saves the post's editable columns and replaces its tag set. The view
// counter is only ever changed by IncrementViews.
func (r *postRepository) Update(ctx context.Context, post *models.BlogPost) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, post.Tags)
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations, "Views", "CreatedAt").Save(post).Error; err != nil {
			return err
		}
		post.Tags = tags
		return linkTags(tx, post.ID, tags)
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("A post with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePublishedPosts(ctx)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_post_id = ?", id).Delete(&models.BlogPostTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.BlogPost{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePublishedPosts(ctx)
	return nil
}

// IncrementViews bumps the counter in a single UPDATE so concurrent reads are
// not lost, then drops the cached published list so it shows the new count.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePublishedPosts(ctx)
	return nil
}

func (r *postRepository) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).
		Where("status = ?", models.StatusPublished).
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// resolveTags maps tag names to persisted rows, preserving order.
func resolveTags(tx *gorm.DB, in []models.Tag) ([]models.Tag, error) {
	names := make([]string, 0, len(in))
	for _, t := range in {
		names = append(names, t.Name)
	}
	wanted := models.NewTags(names)

	out := make([]models.Tag, 0, len(wanted))
	for _, t := range wanted {
		tag := models.Tag{Name: t.Name}
		if err := tx.Where(models.Tag{Name: t.Name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, nil
}
