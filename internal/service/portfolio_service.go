package service

import (
	"context"
	"log/slog"
	"strings"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/observability"
	"devconnect/internal/repository"
)

type PortfolioService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

// PortfolioOwner is the public card at the top of a portfolio.
type PortfolioOwner struct {
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar"`
	Location    string `json:"location"`
	JoinDate    string `json:"join_date"`
	GithubURL   string `json:"github_url,omitempty"`
	LinkedinURL string `json:"linkedin_url,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
	Email       string `json:"email"`
}

// Portfolio is a member's public showcase.
type Portfolio struct {
	User     PortfolioOwner   `json:"user"`
	Skills   []string         `json:"skills"`
	Featured []models.Project `json:"featured_projects"`
	Other    []models.Project `json:"other_projects"`
	Views    int64            `json:"views"`
}

func NewPortfolioService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository) *PortfolioService {
	return &PortfolioService{userRepo: userRepo, projectRepo: projectRepo}
}

// Get loads the public portfolio of username and counts the visit.
func (s *PortfolioService) Get(ctx context.Context, username string) (*Portfolio, error) {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	projects, err := s.projectRepo.ListByUser(ctx, user.ID, true)
	if err != nil {
		return nil, err
	}

	p := &Portfolio{
		User:     ownerCard(user),
		Skills:   user.Skills,
		Featured: []models.Project{},
		Other:    []models.Project{},
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	for _, pr := range projects {
		if pr.Featured {
			p.Featured = append(p.Featured, pr)
		} else {
			p.Other = append(p.Other, pr)
		}
	}

	views, err := cache.Incr(ctx, cache.PortfolioViewsKey(user.ID))
	if err != nil {
		slog.WarnContext(ctx, "failed to count portfolio view", "user_id", user.ID, "err", err)
		views = cache.Counter(ctx, cache.PortfolioViewsKey(user.ID))
	}
	observability.PortfolioViews.Inc()
	p.Views = views

	return p, nil
}

func ownerCard(u *models.User) PortfolioOwner {
	avatar := u.Avatar
	if avatar == "" {
		avatar = models.DefaultAvatar
	}
	return PortfolioOwner{
		Username:    u.Username,
		FullName:    u.FullName,
		Bio:         u.Bio,
		Avatar:      avatar,
		Location:    u.Location,
		JoinDate:    u.JoinDate(),
		GithubURL:   u.GithubURL(),
		LinkedinURL: u.LinkedinURL,
		WebsiteURL:  u.WebsiteURL,
		Email:       u.Email,
	}
}
