package server

import (
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard handles GET /api/dashboard and GET /api/dashboard/:tab
// @Summary Dashboard
// @Description One tab of the signed-in developer's dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param tab query string false "overview, projects, blogs or analytics"
// @Success 200 {object} service.DashboardView
// @Failure 400 {object} models.ErrorResponse
// @Router /dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	tab := c.Params("tab")
	if tab == "" {
		tab = c.Query("tab")
	}

	view, err := s.dashboardService.View(c.UserContext(), userID, tab)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(view)
}

// CreateProject handles POST /api/dashboard/projects
// @Summary Add project
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProjectInput true "Project"
// @Success 201 {object} models.Project
// @Failure 400 {object} models.ErrorResponse
// @Router /dashboard/projects [post]
func (s *Server) CreateProject(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.ProjectInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	project, err := s.dashboardService.CreateProject(c.UserContext(), userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// UpdateProject handles PUT /api/dashboard/projects/:id
// @Summary Edit project
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body service.UpdateProjectInput true "Fields to change"
// @Success 200 {object} models.Project
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /dashboard/projects/{id} [put]
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateProjectInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	project, err := s.dashboardService.UpdateProject(c.UserContext(), userID, id, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(project)
}

// DeleteProject handles DELETE /api/dashboard/projects/:id
// @Summary Delete project
// @Tags dashboard
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Router /dashboard/projects/{id} [delete]
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.dashboardService.DeleteProject(c.UserContext(), userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetDashboardPost handles GET /api/dashboard/posts/:id
// @Summary Load own post for editing
// @Description Includes drafts and the raw markdown
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.BlogPost
// @Failure 403 {object} models.ErrorResponse
// @Router /dashboard/posts/{id} [get]
func (s *Server) GetDashboardPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.dashboardService.GetPost(c.UserContext(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/dashboard/posts
// @Summary Write post
// @Description Saved as Draft unless publish is true
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.PostInput true "Post"
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /dashboard/posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req service.PostInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.dashboardService.CreatePost(c.UserContext(), userID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/dashboard/posts/:id
// @Summary Edit post
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body service.UpdatePostInput true "Fields to change"
// @Success 200 {object} models.BlogPost
// @Failure 403 {object} models.ErrorResponse
// @Router /dashboard/posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdatePostInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.dashboardService.UpdatePost(c.UserContext(), userID, id, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// PublishPost handles POST /api/dashboard/posts/:id/publish
// @Summary Publish post
// @Description Sets the publish date and announces the post on the live feed
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} models.BlogPost
// @Failure 403 {object} models.ErrorResponse
// @Router /dashboard/posts/{id}/publish [post]
func (s *Server) PublishPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.dashboardService.PublishPost(c.UserContext(), userID, id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/dashboard/posts/:id
// @Summary Delete post
// @Tags dashboard
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Router /dashboard/posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.dashboardService.DeletePost(c.UserContext(), userID, id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
