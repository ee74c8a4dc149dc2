package service

import (
	"context"
	"testing"

	"devconnect/internal/featureflags"
	"devconnect/internal/models"
	"devconnect/internal/notifications"
	"devconnect/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDashboard(f *fixture, flags string, events EventPublisher) *DashboardService {
	return NewDashboardService(f.users, f.posts, f.projects, featureflags.NewManager(flags), events)
}

func TestDashboardService_Overview(t *testing.T) {
	f := newFixture(t, true)
	john := f.user(t, "johndoe")
	svc := newDashboard(f, "", nil)

	view, err := svc.View(context.Background(), john.ID, "")
	require.NoError(t, err)
	assert.Equal(t, TabOverview, view.Tab)
	assert.Equal(t, "Welcome back, John Doe", view.Greeting)
	assert.Equal(t, []Stat{
		{Label: "Total Projects", Value: "4"},
		{Label: "Published Blogs", Value: "1"},
		{Label: "Total Views", Value: "1.2K"},
		{Label: "Total Stars", Value: "116"},
	}, view.Stats)

	require.Len(t, view.RecentProjects, 3)
	assert.Equal(t, "E-commerce Platform", view.RecentProjects[0].Title)
	assert.Equal(t, "2 days ago", view.RecentProjects[0].LastUpdated)
	assert.Equal(t, "1 week ago", view.RecentProjects[1].LastUpdated)

	require.Len(t, view.RecentPosts, 1)
	assert.Equal(t, "2024-01-15", view.RecentPosts[0].Date)
	assert.EqualValues(t, 1250, view.RecentPosts[0].Views)
	assert.Nil(t, view.Analytics)
}

func TestDashboardService_UnknownTab(t *testing.T) {
	f := newFixture(t, true)
	john := f.user(t, "johndoe")

	_, err := newDashboard(f, "", nil).View(context.Background(), john.ID, "settings")
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func TestDashboardService_BlogsTabShowsDrafts(t *testing.T) {
	f := newFixture(t, true)
	john := f.user(t, "johndoe")
	svc := newDashboard(f, "", nil)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, john.ID, PostInput{Title: "MongoDB Notes", Content: "Some **notes**."})
	require.NoError(t, err)

	view, err := svc.View(ctx, john.ID, "BLOGS")
	require.NoError(t, err)
	require.Len(t, view.Posts, 2)
	var draft PostRow
	for _, row := range view.Posts {
		if row.Status == models.StatusDraft {
			draft = row
		}
	}
	assert.Equal(t, "MongoDB Notes", draft.Title)
	assert.Equal(t, "Draft", draft.Date)
	assert.Equal(t, "1 min read", draft.ReadTime)
	assert.Zero(t, draft.Views)
}

func TestDashboardService_AnalyticsFlag(t *testing.T) {
	f := newFixture(t, true)
	john := f.user(t, "johndoe")
	ctx := context.Background()

	view, err := newDashboard(f, "", nil).View(ctx, john.ID, TabAnalytics)
	require.NoError(t, err)
	require.NotNil(t, view.Analytics)
	assert.False(t, view.Analytics.Enabled)
	assert.Equal(t, "Portfolio analytics coming soon", view.Analytics.Panels[0].Message)
	assert.Equal(t, "Blog analytics coming soon", view.Analytics.Panels[1].Message)

	mr, _ := testutil.NewTestRedis(t)
	require.NoError(t, mr.Set("portfolio_views:"+itoa(john.ID), "17"))

	view, err = newDashboard(f, "dashboard_analytics=on", nil).View(ctx, john.ID, TabAnalytics)
	require.NoError(t, err)
	assert.True(t, view.Analytics.Enabled)
	assert.EqualValues(t, 17, view.Analytics.PortfolioViews)
	require.Len(t, view.Analytics.Posts, 1)
	assert.EqualValues(t, 1250, view.Analytics.Posts[0].Views)
}

func TestDashboardService_CreatePublishedPostBroadcasts(t *testing.T) {
	f := newFixture(t, true)
	john := f.user(t, "johndoe")
	events := &recordingPublisher{}
	svc := newDashboard(f, "", events)

	post, err := svc.CreatePost(context.Background(), john.ID, PostInput{
		Title:   "Go Generics in Practice",
		Excerpt: "Type parameters without the hype.",
		Content: "## Constraints\n\nUse them sparingly.",
		Tags:    []string{"Go", "Go", " Generics "},
		Publish: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "go-generics-in-practice", post.Slug)
	assert.True(t, post.IsPublished())
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, []string{"Go", "Generics"}, post.TagNames())
	assert.Equal(t, "John Doe", post.Author.FullName)

	require.Len(t, events.broadcast, 1)
	ev := events.broadcast[0]
	assert.Equal(t, notifications.EventPostPublished, ev.Type)
	payload := ev.Payload.(notifications.PostPublishedPayload)
	assert.Equal(t, post.ID, payload.ID)
	assert.Equal(t, "John Doe", payload.Author)
}

func TestDashboardService_PublishDraft(t *testing.T) {
	f := newFixture(t, true)
	john := f.user(t, "johndoe")
	events := &recordingPublisher{}
	svc := newDashboard(f, "", events)
	ctx := context.Background()

	draft, err := svc.CreatePost(ctx, john.ID, PostInput{Title: "Draft Thoughts", Content: "Later."})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)
	assert.Empty(t, events.broadcast)
	require.NoError(t, f.posts.IncrementViews(ctx, draft.ID))

	published, err := svc.PublishPost(ctx, john.ID, draft.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished())
	assert.Equal(t, int64(1), published.Views)
	require.Len(t, events.broadcast, 1)

	// Publishing twice does not announce again.
	_, err = svc.PublishPost(ctx, john.ID, draft.ID)
	require.NoError(t, err)
	assert.Len(t, events.broadcast, 1)

	posts, err := NewBlogService(f.posts).List(ctx, BlogQuery{Search: "Draft Thoughts"})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestDashboardService_PostOwnership(t *testing.T) {
	f := newFixture(t, true)
	jane := f.user(t, "janesmith")
	svc := newDashboard(f, "", nil)
	ctx := context.Background()
	react := f.postBySlug(t, "building-scalable-react-applications")

	title := "Hijacked"
	_, err := svc.UpdatePost(ctx, jane.ID, react.ID, UpdatePostInput{Title: &title})
	assert.Equal(t, models.CodeForbidden, models.ErrorCode(err))

	err = svc.DeletePost(ctx, jane.ID, react.ID)
	assert.Equal(t, models.CodeForbidden, models.ErrorCode(err))

	_, err = svc.PublishPost(ctx, jane.ID, react.ID)
	assert.Equal(t, models.CodeForbidden, models.ErrorCode(err))
}

func TestDashboardService_UpdatePostRecomputesReadTime(t *testing.T) {
	f := newFixture(t, true)
	john := f.user(t, "johndoe")
	svc := newDashboard(f, "", nil)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, john.ID, PostInput{Title: "Short Post", Content: "tiny", ReadTime: "20 min read"})
	require.NoError(t, err)
	assert.Equal(t, "20 min read", post.ReadTime)

	long := ""
	for i := 0; i < 450; i++ {
		long += "word "
	}
	tags := []string{"Writing"}
	updated, err := svc.UpdatePost(ctx, john.ID, post.ID, UpdatePostInput{Content: &long, Tags: &tags})
	require.NoError(t, err)
	assert.Equal(t, "3 min read", updated.ReadTime)
	assert.Equal(t, []string{"Writing"}, updated.TagNames())
}

func TestDashboardService_CreatePostValidation(t *testing.T) {
	f := newFixture(t, true)
	john := f.user(t, "johndoe")
	svc := newDashboard(f, "", nil)
	ctx := context.Background()

	tests := []struct {
		name string
		in   PostInput
	}{
		{"missing title", PostInput{Content: "body"}},
		{"missing content", PostInput{Title: "Valid Title"}},
		{"bad slug", PostInput{Title: "Valid Title", Slug: "Bad Slug!", Content: "body"}},
		{"bad image", PostInput{Title: "Valid Title", Content: "body", ImageURL: "ftp://x"}},
		{"too many tags", PostInput{Title: "Valid Title", Content: "body", Tags: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, john.ID, tt.in)
			assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
		})
	}

	_, err := svc.CreatePost(ctx, john.ID, PostInput{Title: "Modern CSS Grid Layouts", Content: "again"})
	assert.Equal(t, models.CodeConflict, models.ErrorCode(err))
}

func TestDashboardService_ProjectCRUD(t *testing.T) {
	f := newFixture(t, true)
	john := f.user(t, "johndoe")
	jane := f.user(t, "janesmith")
	events := &recordingPublisher{}
	svc := newDashboard(f, "", events)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, john.ID, ProjectInput{
		Title:     "CLI Toolkit",
		Tech:      []string{"Go", "go", "Cobra"},
		Stars:     3,
		GithubURL: "https://github.com/johndoe/cli-toolkit",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, p.Status)
	assert.Equal(t, []string{"Go", "Cobra"}, p.Tech)
	assert.Len(t, events.direct[john.ID], 1)

	status := models.StatusDraft
	_, err = svc.UpdateProject(ctx, jane.ID, p.ID, UpdateProjectInput{Status: &status})
	assert.Equal(t, models.CodeForbidden, models.ErrorCode(err))

	updated, err := svc.UpdateProject(ctx, john.ID, p.ID, UpdateProjectInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, updated.Status)

	bad := "Archived"
	_, err = svc.UpdateProject(ctx, john.ID, p.ID, UpdateProjectInput{Status: &bad})
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))

	view, err := svc.View(ctx, john.ID, TabProjects)
	require.NoError(t, err)
	assert.Len(t, view.Projects, 5)

	require.NoError(t, svc.DeleteProject(ctx, john.ID, p.ID))
	_, err = f.projects.GetByID(ctx, p.ID)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
