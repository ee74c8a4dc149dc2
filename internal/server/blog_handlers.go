package server

import (
	"context"
	"strings"
	"time"

	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/blog
// @Summary List articles
// @Description Published articles matching the search text (title or excerpt) and tag, newest first
// @Tags blog
// @Produce json
// @Param search query string false "Case-insensitive text searched in title and excerpt"
// @Param tag query string false "Exact tag name"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.BlogPost
// @Router /blog [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	page := parsePagination(c, 20)
	posts, err := s.blogService.List(ctx, service.BlogQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Tag:    c.Query("tag"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetBlogPage handles GET /api/blog/page
// @Summary Blog index page
// @Description Featured articles, filtered latest articles and the tag list
// @Tags blog
// @Produce json
// @Param search query string false "Case-insensitive text searched in title and excerpt"
// @Param tag query string false "Exact tag name"
// @Success 200 {object} service.BlogPage
// @Router /blog/page [get]
func (s *Server) GetBlogPage(c *fiber.Ctx) error {
	page, err := s.blogService.Page(c.UserContext(), strings.TrimSpace(c.Query("search")), c.Query("tag"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetTags handles GET /api/blog/tags
// @Summary Blog tags
// @Tags blog
// @Produce json
// @Success 200 {array} string
// @Router /blog/tags [get]
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.blogService.Tags(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tags)
}

// GetPost handles GET /api/blog/:id
// @Summary Read an article
// @Description Rendered article with table of contents and related articles. Counts a view.
// @Tags blog
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} service.PostDetail
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /blog/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.blogService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

// SharePost handles GET /api/blog/:id/share
// @Summary Share payload
// @Tags blog
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} service.ShareLink
// @Failure 404 {object} models.ErrorResponse
// @Router /blog/{id}/share [get]
func (s *Server) SharePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	link, err := s.blogService.Share(c.UserContext(), id, s.config.PublicBaseURL)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(link)
}
