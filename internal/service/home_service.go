package service

import (
	"context"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// Feature is one selling point on the landing page.
type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial is a member quote on the landing page.
type Testimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Avatar  string `json:"avatar"`
	Rating  int    `json:"rating"`
}

// Hero is the landing page headline block.
type Hero struct {
	Title     string `json:"title"`
	Highlight string `json:"highlight"`
	Subtitle  string `json:"subtitle"`
}

// CommunityStats are the live counters under the features.
type CommunityStats struct {
	Developers int64 `json:"developers"`
	Projects   int64 `json:"projects"`
	Articles   int64 `json:"articles"`
}

// HomePage is the landing page content.
type HomePage struct {
	Hero         Hero           `json:"hero"`
	Features     []Feature      `json:"features"`
	Stats        CommunityStats `json:"stats"`
	Testimonials []Testimonial  `json:"testimonials"`
}

var homeHero = Hero{
	Title:     "Build Your",
	Highlight: "Developer Brand",
	Subtitle: "Create stunning portfolios, share technical insights, and connect with the developer community. " +
		"Everything you need to showcase your skills and advance your career.",
}

var homeFeatures = []Feature{
	{Icon: "code", Title: "Portfolio Showcase", Description: "Create stunning portfolios to display your projects and skills"},
	{Icon: "book-open", Title: "Technical Blogging", Description: "Share your knowledge with markdown-powered blog posts"},
	{Icon: "users", Title: "Developer Community", Description: "Connect with fellow developers and showcase your work"},
	{Icon: "github", Title: "GitHub Integration", Description: "Automatically sync your repositories and contributions"},
}

var homeTestimonials = []Testimonial{
	{
		Name:    "Sarah Johnson",
		Role:    "Frontend Developer",
		Content: "DevConnect helped me land my dream job. The portfolio builder is amazing!",
		Avatar:  "https://images.pexels.com/photos/415829/pexels-photo-415829.jpeg?auto=compress&cs=tinysrgb&w=400",
		Rating:  5,
	},
	{
		Name:    "Mike Chen",
		Role:    "Full Stack Developer",
		Content: "The blogging platform is perfect for sharing technical insights. Love the markdown editor!",
		Avatar:  models.DefaultAvatar,
		Rating:  5,
	},
	{
		Name:    "Emma Wilson",
		Role:    "DevOps Engineer",
		Content: "Great community and easy to use. My portfolio looks professional and modern.",
		Avatar:  "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=400",
		Rating:  5,
	},
}

type HomeService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	projectRepo repository.ProjectRepository
}

func NewHomeService(userRepo repository.UserRepository, postRepo repository.PostRepository, projectRepo repository.ProjectRepository) *HomeService {
	return &HomeService{userRepo: userRepo, postRepo: postRepo, projectRepo: projectRepo}
}

// Page returns the landing page with live community counts.
func (s *HomeService) Page(ctx context.Context) (*HomePage, error) {
	developers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	articles, err := s.postRepo.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	return &HomePage{
		Hero:         homeHero,
		Features:     homeFeatures,
		Stats:        CommunityStats{Developers: developers, Projects: projects, Articles: articles},
		Testimonials: homeTestimonials,
	}, nil
}
