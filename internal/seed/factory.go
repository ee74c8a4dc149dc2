package seed

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var fakeTags = []string{
	"Go", "React", "TypeScript", "DevOps", "Kubernetes", "Testing",
	"Performance", "Security", "Database", "CSS", "Backend", "Career",
}

var fakeTech = []string{
	"Go", "React", "Vue.js", "Node.js", "PostgreSQL", "Redis", "Docker",
	"Kubernetes", "GraphQL", "Tailwind CSS", "Next.js", "gRPC",
}

// Factory generates fake members with posts and projects.
type Factory struct {
	db    *gorm.DB
	faker *gofakeit.Faker
	now   time.Time
}

// NewFactory creates a Factory. A zero seed produces different data on every run.
func NewFactory(db *gorm.DB, seed int64) *Factory {
	return &Factory{db: db, faker: gofakeit.New(seed), now: time.Now()}
}

// BuildUser returns an unsaved fake member.
func (f *Factory) BuildUser(hashedPassword string) *models.User {
	first, last := f.faker.FirstName(), f.faker.LastName()
	handle := alnum(strings.ToLower(first+last)) + fmt.Sprint(f.faker.Number(100, 9999))
	return &models.User{
		Username: handle,
		Email:    handle + "@example.com",
		Password: hashedPassword,
		FullName: first + " " + last,
		Bio:      f.faker.JobTitle() + ". " + f.faker.HipsterSentence(12),
		Avatar:   fmt.Sprintf("https://picsum.photos/seed/%s/400/400", handle),
		Location: f.faker.City() + ", " + f.faker.StateAbr(),
		Skills:   f.pick(fakeTech, 6),
		Theme:    models.ThemeLight,
	}
}

// BuildPost returns an unsaved fake article by author.
func (f *Factory) BuildPost(author *models.User, published bool) *models.BlogPost {
	title := strings.TrimSuffix(f.faker.HipsterSentence(5), ".")
	var body strings.Builder
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&body, "## %s\n\n%s\n\n", strings.TrimSuffix(f.faker.HipsterSentence(3), "."), f.faker.Paragraph(2, 4, 12, " "))
	}
	post := &models.BlogPost{
		Title:    title,
		Slug:     validation.Slugify(title) + "-" + strings.ToLower(f.faker.LetterN(6)),
		Excerpt:  f.faker.Sentence(18),
		Content:  body.String(),
		AuthorID: author.ID,
		Status:   models.StatusDraft,
		Tags:     models.NewTags(f.pick(fakeTags, 3)),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/450", f.faker.UUID()),
	}
	if published {
		at := f.now.Add(-time.Duration(f.faker.Number(1, 180)) * 24 * time.Hour).UTC()
		post.Status = models.StatusPublished
		post.PublishedAt = &at
		post.Views = int64(f.faker.Number(0, 2500))
	}
	return post
}

// BuildProject returns an unsaved fake project owned by owner.
func (f *Factory) BuildProject(owner *models.User) *models.Project {
	name := f.faker.AppName()
	slug := validation.Slugify(name)
	updated := f.now.Add(-time.Duration(f.faker.Number(1, 60)) * 24 * time.Hour)
	return &models.Project{
		UserID:      owner.ID,
		Title:       name,
		Description: f.faker.Sentence(20),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/600/400", f.faker.UUID()),
		Tech:        f.pick(fakeTech, 4),
		Stars:       f.faker.Number(0, 500),
		Status:      models.StatusPublished,
		LiveURL:     "https://" + slug + ".example.com",
		GithubURL:   "https://github.com/" + owner.Username + "/" + slug,
		Featured:    f.faker.Bool(),
		CreatedAt:   updated,
		UpdatedAt:   updated,
	}
}

// Members creates n fake members, each with a published post, a draft and two projects.
func (f *Factory) Members(ctx context.Context, n int, password string) ([]models.User, error) {
	if password == "" {
		password = DefaultDemoPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash fake password: %w", err)
	}

	posts := repository.NewPostRepository(f.db)
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := f.BuildUser(string(hashed))
		if err := f.db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, fmt.Errorf("create fake user: %w", err)
		}
		for _, published := range []bool{true, false} {
			if err := posts.Create(ctx, f.BuildPost(user, published)); err != nil {
				return nil, fmt.Errorf("create fake post: %w", err)
			}
		}
		for j := 0; j < 2; j++ {
			if err := f.db.WithContext(ctx).Create(f.BuildProject(user)).Error; err != nil {
				return nil, fmt.Errorf("create fake project: %w", err)
			}
		}
		users = append(users, *user)
	}
	return users, nil
}

// pick returns n distinct entries of from in random order.
func (f *Factory) pick(from []string, n int) []string {
	shuffled := append([]string(nil), from...)
	f.faker.ShuffleStrings(shuffled)
	return shuffled[:min(n, len(shuffled))]
}

func alnum(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, s)
}
