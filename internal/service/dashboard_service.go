package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/featureflags"
	"devconnect/internal/markdown"
	"devconnect/internal/models"
	"devconnect/internal/notifications"
	"devconnect/internal/observability"
	"devconnect/internal/repository"
	"devconnect/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// Dashboard tabs.
const (
	TabOverview  = "overview"
	TabProjects  = "projects"
	TabBlogs     = "blogs"
	TabAnalytics = "analytics"
)

// DashboardTabs lists the tabs in display order.
var DashboardTabs = []string{TabOverview, TabProjects, TabBlogs, TabAnalytics}

const (
	recentItems  = 3
	maxTechItems = 12
	dateLayout   = "2006-01-02"
)

// EventPublisher delivers live feed events.
type EventPublisher interface {
	Broadcast(ctx context.Context, ev notifications.Event) error
	SendToUser(ctx context.Context, userID uint, ev notifications.Event) error
}

type DashboardService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	projectRepo repository.ProjectRepository
	flags       *featureflags.Manager
	events      EventPublisher
	now         func() time.Time
}

// Stat is one summary card on the overview tab.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProjectSummary is a project row with its relative update time.
type ProjectSummary struct {
	models.Project
	LastUpdated string `json:"last_updated"`
}

// PostRow is one line of the blog management table.
type PostRow struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Status   string `json:"status"`
	Views    int64  `json:"views"`
	ReadTime string `json:"read_time"`
	Date     string `json:"date"`
}

// AnalyticsPanel is one card of the analytics tab.
type AnalyticsPanel struct {
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
}

// PostViews pairs a post with its read count.
type PostViews struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Views int64  `json:"views"`
}

// Analytics is the analytics tab content.
type Analytics struct {
	Enabled        bool             `json:"enabled"`
	Panels         []AnalyticsPanel `json:"panels"`
	PortfolioViews int64            `json:"portfolio_views"`
	Posts          []PostViews      `json:"posts,omitempty"`
}

// DashboardView is the content of one dashboard tab.
type DashboardView struct {
	Tab            string           `json:"tab"`
	Tabs           []string         `json:"tabs"`
	Greeting       string           `json:"greeting"`
	Stats          []Stat           `json:"stats,omitempty"`
	RecentProjects []ProjectSummary `json:"recent_projects,omitempty"`
	RecentPosts    []PostRow        `json:"recent_posts,omitempty"`
	Projects       []ProjectSummary `json:"projects,omitempty"`
	Posts          []PostRow        `json:"posts,omitempty"`
	Analytics      *Analytics       `json:"analytics,omitempty"`
}

type ProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image"`
	Tech        []string `json:"tech"`
	Stars       int      `json:"stars"`
	Status      string   `json:"status"`
	LiveURL     string   `json:"live_url"`
	GithubURL   string   `json:"github_url"`
	Featured    bool     `json:"featured"`
}

type UpdateProjectInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image"`
	Tech        *[]string `json:"tech"`
	Stars       *int      `json:"stars"`
	Status      *string   `json:"status"`
	LiveURL     *string   `json:"live_url"`
	GithubURL   *string   `json:"github_url"`
	Featured    *bool     `json:"featured"`
}

type PostInput struct {
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"image"`
	ReadTime string   `json:"read_time"`
	Featured bool     `json:"featured"`
	Publish  bool     `json:"publish"`
}

type UpdatePostInput struct {
	Title    *string   `json:"title"`
	Excerpt  *string   `json:"excerpt"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	ImageURL *string   `json:"image"`
	ReadTime *string   `json:"read_time"`
	Featured *bool     `json:"featured"`
}

func NewDashboardService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	projectRepo repository.ProjectRepository,
	flags *featureflags.Manager,
	events EventPublisher,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		projectRepo: projectRepo,
		flags:       flags,
		events:      events,
		now:         time.Now,
	}
}

// ValidTab reports whether tab names a dashboard tab.
func ValidTab(tab string) bool {
	for _, t := range DashboardTabs {
		if t == tab {
			return true
		}
	}
	return false
}

// View builds the requested tab for userID. An empty tab means overview.
func (s *DashboardService) View(ctx context.Context, userID uint, tab string) (*DashboardView, error) {
	tab = strings.ToLower(strings.TrimSpace(tab))
	if tab == "" {
		tab = TabOverview
	}
	if !ValidTab(tab) {
		return nil, models.NewValidationError("Unknown dashboard tab: " + tab)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		Tab:      tab,
		Tabs:     DashboardTabs,
		Greeting: "Welcome back, " + displayName(user),
	}

	switch tab {
	case TabOverview:
		view.Stats = s.stats(projects, posts)
		view.RecentProjects = s.projectSummaries(projects[:min(recentItems, len(projects))])
		view.RecentPosts = postRows(posts[:min(recentItems, len(posts))])
	case TabProjects:
		view.Projects = s.projectSummaries(projects)
	case TabBlogs:
		view.Posts = postRows(posts)
	case TabAnalytics:
		view.Analytics = s.analytics(ctx, userID, posts)
	}
	return view, nil
}

func (s *DashboardService) stats(projects []models.Project, posts []models.BlogPost) []Stat {
	var published, views, stars int64
	for _, p := range posts {
		if p.IsPublished() {
			published++
		}
		views += p.Views
	}
	for _, p := range projects {
		stars += int64(p.Stars)
	}
	return []Stat{
		{Label: "Total Projects", Value: CompactNumber(int64(len(projects)))},
		{Label: "Published Blogs", Value: CompactNumber(published)},
		{Label: "Total Views", Value: CompactNumber(views)},
		{Label: "Total Stars", Value: CompactNumber(stars)},
	}
}

func (s *DashboardService) projectSummaries(projects []models.Project) []ProjectSummary {
	now := s.now()
	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectSummary{Project: p, LastUpdated: RelativeTime(p.UpdatedAt, now)})
	}
	return out
}

func postRows(posts []models.BlogPost) []PostRow {
	rows := make([]PostRow, 0, len(posts))
	for _, p := range posts {
		date := models.StatusDraft
		if p.PublishedAt != nil {
			date = p.PublishedAt.Format(dateLayout)
		}
		rows = append(rows, PostRow{
			ID:       p.ID,
			Title:    p.Title,
			Excerpt:  p.Excerpt,
			Status:   p.Status,
			Views:    p.Views,
			ReadTime: p.ReadTime,
			Date:     date,
		})
	}
	return rows
}

func (s *DashboardService) analytics(ctx context.Context, userID uint, posts []models.BlogPost) *Analytics {
	if s.flags == nil || !s.flags.Enabled(featureflags.DashboardAnalytics, userID) {
		return &Analytics{
			Panels: []AnalyticsPanel{
				{Title: "Portfolio Views", Message: "Portfolio analytics coming soon"},
				{Title: "Blog Performance", Message: "Blog analytics coming soon"},
			},
		}
	}

	a := &Analytics{
		Enabled:        true,
		Panels:         []AnalyticsPanel{{Title: "Portfolio Views"}, {Title: "Blog Performance"}},
		PortfolioViews: cache.Counter(ctx, cache.PortfolioViewsKey(userID)),
		Posts:          make([]PostViews, 0, len(posts)),
	}
	for _, p := range posts {
		if p.IsPublished() {
			a.Posts = append(a.Posts, PostViews{ID: p.ID, Title: p.Title, Views: p.Views})
		}
	}
	return a
}

// CreateProject adds a project to the user's portfolio.
func (s *DashboardService) CreateProject(ctx context.Context, userID uint, in ProjectInput) (*models.Project, error) {
	p := &models.Project{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Tech:        in.Tech,
		Stars:       in.Stars,
		Status:      in.Status,
		LiveURL:     strings.TrimSpace(in.LiveURL),
		GithubURL:   strings.TrimSpace(in.GithubURL),
		Featured:    in.Featured,
	}
	if p.Status == "" {
		p.Status = models.StatusPublished
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.notifyOwner(ctx, p)
	return p, nil
}

// UpdateProject applies the provided fields to a project the user owns.
func (s *DashboardService) UpdateProject(ctx context.Context, userID, projectID uint, in UpdateProjectInput) (*models.Project, error) {
	p, err := s.ownedProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Tech != nil {
		p.Tech = *in.Tech
	}
	if in.Stars != nil {
		p.Stars = *in.Stars
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.LiveURL != nil {
		p.LiveURL = strings.TrimSpace(*in.LiveURL)
	}
	if in.GithubURL != nil {
		p.GithubURL = strings.TrimSpace(*in.GithubURL)
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.notifyOwner(ctx, p)
	return p, nil
}

// DeleteProject removes a project the user owns.
func (s *DashboardService) DeleteProject(ctx context.Context, userID, projectID uint) error {
	if _, err := s.ownedProject(ctx, userID, projectID); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, projectID)
}

func (s *DashboardService) ownedProject(ctx context.Context, userID, projectID uint) (*models.Project, error) {
	p, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, models.NewForbiddenError("You can only modify your own projects")
	}
	return p, nil
}

func validateProject(p *models.Project) error {
	if err := validation.ValidateTitle(p.Title); err != nil {
		return models.NewValidationError(err.Error())
	}
	if p.Status != models.StatusPublished && p.Status != models.StatusDraft {
		return models.NewValidationError("Status must be Published or Draft")
	}
	if p.Stars < 0 {
		return models.NewValidationError("Stars cannot be negative")
	}
	urls := []struct{ field, raw string }{
		{"image", p.ImageURL},
		{"live_url", p.LiveURL},
		{"github_url", p.GithubURL},
	}
	for _, u := range urls {
		if err := validation.ValidateURL(u.field, u.raw); err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	tech, err := validation.NormalizeSkills(p.Tech)
	if err != nil {
		return models.NewValidationError(err.Error())
	}
	if len(tech) > maxTechItems {
		return models.NewValidationError("Too many technologies (max 12)")
	}
	p.Tech = tech
	return nil
}

// CreatePost stores a new article as a draft, or publishes it right away when asked.
func (s *DashboardService) CreatePost(ctx context.Context, userID uint, in PostInput) (*models.BlogPost, error) {
	post := &models.BlogPost{
		Title:    strings.TrimSpace(in.Title),
		Slug:     strings.TrimSpace(in.Slug),
		Excerpt:  strings.TrimSpace(in.Excerpt),
		Content:  in.Content,
		AuthorID: userID,
		Status:   models.StatusDraft,
		ReadTime: strings.TrimSpace(in.ReadTime),
		Tags:     models.NewTags(in.Tags),
		Featured: in.Featured,
		ImageURL: strings.TrimSpace(in.ImageURL),
	}
	if post.Slug == "" {
		post.Slug = validation.Slugify(post.Title)
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}
	if in.Publish {
		s.markPublished(post)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	// Reload so the author and tag IDs are populated.
	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if created.IsPublished() {
		s.announce(ctx, created)
	}
	return created, nil
}

// UpdatePost applies the provided fields to a post the user wrote.
func (s *DashboardService) UpdatePost(ctx context.Context, userID, postID uint, in UpdatePostInput) (*models.BlogPost, error) {
	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		post.Title = strings.TrimSpace(*in.Title)
	}
	if in.Excerpt != nil {
		post.Excerpt = strings.TrimSpace(*in.Excerpt)
	}
	if in.Content != nil {
		post.Content = *in.Content
		if in.ReadTime == nil {
			post.ReadTime = ""
		}
	}
	if in.Tags != nil {
		post.Tags = models.NewTags(*in.Tags)
	}
	if in.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.ReadTime != nil {
		post.ReadTime = strings.TrimSpace(*in.ReadTime)
	}
	if in.Featured != nil {
		post.Featured = *in.Featured
	}
	if err := validatePost(post); err != nil {
		return nil, err
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// PublishPost makes a draft public and announces it on the live feed.
// Publishing an already published post is a no-op.
func (s *DashboardService) PublishPost(ctx context.Context, userID, postID uint) (*models.BlogPost, error) {
	ctx, span := observability.StartSpan(ctx, "DashboardService", "PublishPost",
		attribute.Int64("post.id", int64(postID)), attribute.Int64("user.id", int64(userID)))
	defer span.End()

	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if post.IsPublished() {
		return post, nil
	}
	s.markPublished(post)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	if post, err = s.postRepo.GetByID(ctx, post.ID); err != nil {
		return nil, err
	}
	s.announce(ctx, post)
	return post, nil
}

// DeletePost removes a post the user wrote.
func (s *DashboardService) DeletePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.ownedPost(ctx, userID, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// GetPost returns a post the user wrote, drafts included.
func (s *DashboardService) GetPost(ctx context.Context, userID, postID uint) (*models.BlogPost, error) {
	return s.ownedPost(ctx, userID, postID)
}

func (s *DashboardService) ownedPost(ctx context.Context, userID, postID uint) (*models.BlogPost, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, models.NewForbiddenError("You can only modify your own posts")
	}
	return post, nil
}

func (s *DashboardService) markPublished(post *models.BlogPost) {
	now := s.now().UTC()
	post.Status = models.StatusPublished
	post.PublishedAt = &now
}

func validatePost(post *models.BlogPost) error {
	if err := validation.ValidateTitle(post.Title); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateSlug(post.Slug); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateExcerpt(post.Excerpt); err != nil {
		return models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(post.Content) == "" {
		return models.NewValidationError("Content is required")
	}
	if err := validation.ValidateTags(post.TagNames()); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err := validation.ValidateURL("image", post.ImageURL); err != nil {
		return models.NewValidationError(err.Error())
	}
	if post.ReadTime == "" {
		post.ReadTime = markdown.ReadTime(post.Content)
	}
	return nil
}

func (s *DashboardService) announce(ctx context.Context, post *models.BlogPost) {
	if s.events == nil {
		return
	}
	ev := notifications.Event{
		Type: notifications.EventPostPublished,
		Payload: notifications.PostPublishedPayload{
			ID:       post.ID,
			Title:    post.Title,
			Slug:     post.Slug,
			Excerpt:  post.Excerpt,
			Author:   displayName(&post.Author),
			Tags:     post.TagNames(),
			ReadTime: post.ReadTime,
		},
	}
	if err := s.events.Broadcast(ctx, ev); err != nil {
		slog.WarnContext(ctx, "failed to broadcast published post", "post_id", post.ID, "err", err)
	}
}

// notifyOwner pushes a project change to the owner's other sessions.
func (s *DashboardService) notifyOwner(ctx context.Context, p *models.Project) {
	if s.events == nil {
		return
	}
	ev := notifications.Event{Type: notifications.EventProjectUpdated, Payload: p}
	if err := s.events.SendToUser(ctx, p.UserID, ev); err != nil {
		slog.WarnContext(ctx, "failed to notify project owner", "user_id", p.UserID, "err", err)
	}
}

func displayName(u *models.User) string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.Username
}
