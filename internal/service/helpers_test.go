package service

import (
	"context"
	"sync"
	"testing"

	"devconnect/internal/models"
	"devconnect/internal/notifications"
	"devconnect/internal/repository"
	"devconnect/internal/seed"
	"devconnect/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    repository.UserRepository
	posts    repository.PostRepository
	projects repository.ProjectRepository
}

func newFixture(t *testing.T, seeded bool) *fixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	if seeded {
		require.NoError(t, seed.DemoContent(db, "Demo-Password-1"))
	}
	return &fixture{
		db:       db,
		users:    repository.NewUserRepository(db),
		posts:    repository.NewPostRepository(db),
		projects: repository.NewProjectRepository(db),
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := f.users.GetByUsername(context.Background(), username)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func (f *fixture) postBySlug(t *testing.T, slug string) *models.BlogPost {
	t.Helper()
	p, err := f.posts.GetBySlug(context.Background(), slug)
	require.NoError(t, err)
	return p
}

func titles(posts []models.BlogPost) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

// recordingPublisher captures feed events instead of delivering them.
type recordingPublisher struct {
	mu        sync.Mutex
	broadcast []notifications.Event
	direct    map[uint][]notifications.Event
}

func (r *recordingPublisher) Broadcast(_ context.Context, ev notifications.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast = append(r.broadcast, ev)
	return nil
}

func (r *recordingPublisher) SendToUser(_ context.Context, userID uint, ev notifications.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.direct == nil {
		r.direct = make(map[uint][]notifications.Event)
	}
	r.direct[userID] = append(r.direct[userID], ev)
	return nil
}
