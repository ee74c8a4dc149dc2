// Package seed loads demo content and generated fixtures into the database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// DefaultDemoPassword is used when no demo password is configured.
const DefaultDemoPassword = "DevConnect!2024"

// DemoContent inserts the Demo manifest. Rows that already exist (matched by
// username, slug or owner and title) are left untouched, so it is safe to run
// on every start.
func DemoContent(db *gorm.DB, password string) error {
	return Apply(db, Demo, password)
}

// Apply inserts the content of m idempotently.
func Apply(db *gorm.DB, m Manifest, password string) error {
	if password == "" {
		password = DefaultDemoPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	users := make(map[string]uint, len(m.Users))
	for _, u := range m.Users {
		id, err := ensureUser(db, u, string(hashed))
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
		users[u.Username] = id
	}

	ctx := context.Background()
	posts := repository.NewPostRepository(db)
	for _, p := range m.Posts {
		authorID, ok := users[p.Author]
		if !ok {
			return fmt.Errorf("seed post %q: unknown author %s", p.Title, p.Author)
		}
		if err := ensurePost(ctx, db, posts, p, authorID); err != nil {
			return fmt.Errorf("seed post %q: %w", p.Title, err)
		}
	}

	for _, p := range m.Projects {
		ownerID, ok := users[p.Owner]
		if !ok {
			return fmt.Errorf("seed project %q: unknown owner %s", p.Title, p.Owner)
		}
		if err := ensureProject(db, p, ownerID); err != nil {
			return fmt.Errorf("seed project %q: %w", p.Title, err)
		}
	}

	cache.InvalidatePublishedPosts(ctx)
	return nil
}

func ensureUser(db *gorm.DB, u UserSeed, hashedPassword string) (uint, error) {
	var existing models.User
	err := db.Where("username = ?", u.Username).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	joined, err := time.Parse(dateLayout, u.JoinDate)
	if err != nil {
		return 0, fmt.Errorf("parse join date: %w", err)
	}
	user := models.User{
		Username:       u.Username,
		Email:          u.Email,
		Password:       hashedPassword,
		FullName:       u.FullName,
		Bio:            u.Bio,
		Avatar:         u.Avatar,
		Location:       u.Location,
		GithubUsername: u.GithubUsername,
		LinkedinURL:    u.LinkedinURL,
		WebsiteURL:     u.WebsiteURL,
		Skills:         u.Skills,
		Theme:          models.ThemeLight,
		CreatedAt:      joined,
	}
	if err := db.Create(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

func ensurePost(ctx context.Context, db *gorm.DB, repo repository.PostRepository, p PostSeed, authorID uint) error {
	slug := validation.Slugify(p.Title)
	var count int64
	if err := db.Model(&models.BlogPost{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	post := &models.BlogPost{
		Title:    p.Title,
		Slug:     slug,
		Excerpt:  p.Excerpt,
		Content:  p.Content,
		AuthorID: authorID,
		Status:   models.StatusDraft,
		ReadTime: p.ReadTime,
		Views:    p.Views,
		Tags:     models.NewTags(p.Tags),
		Featured: p.Featured,
		ImageURL: p.Image,
	}
	if p.PublishedDate != "" {
		published, err := time.Parse(dateLayout, p.PublishedDate)
		if err != nil {
			return fmt.Errorf("parse published date: %w", err)
		}
		post.Status = models.StatusPublished
		post.PublishedAt = &published
		post.CreatedAt = published
	}
	return repo.Create(ctx, post)
}

func ensureProject(db *gorm.DB, p ProjectSeed, ownerID uint) error {
	var count int64
	err := db.Model(&models.Project{}).
		Where("user_id = ? AND title = ?", ownerID, p.Title).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	updated := time.Now().Add(-time.Duration(p.UpdatedDaysAgo) * 24 * time.Hour)
	project := models.Project{
		UserID:      ownerID,
		Title:       p.Title,
		Description: p.Description,
		ImageURL:    p.Image,
		Tech:        p.Tech,
		Stars:       p.Stars,
		Status:      models.StatusPublished,
		LiveURL:     p.LiveURL,
		GithubURL:   p.GithubURL,
		Featured:    p.Featured,
		CreatedAt:   updated,
		UpdatedAt:   updated,
	}
	return db.Create(&project).Error
}

// WriteManifest encodes m as YAML.
func WriteManifest(w io.Writer, m Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}
