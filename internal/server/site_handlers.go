package server

import (
	"strings"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	themeCookie       = "theme"
	themeCookieMaxAge = 365 * 24 * time.Hour
)

// ThemeResponse reports the active UI theme.
type ThemeResponse struct {
	Theme  string `json:"theme"`
	IsDark bool   `json:"is_dark"`
}

// SessionResponse describes who is browsing and what the navbar shows.
type SessionResponse struct {
	Authenticated bool               `json:"authenticated"`
	User          *models.User       `json:"user,omitempty"`
	Theme         string             `json:"theme"`
	Nav           service.Navigation `json:"nav"`
	Features      map[string]bool    `json:"features"`
}

// GetHome handles GET /api/home
// @Summary Landing page
// @Description Hero copy, features, testimonials and community counts
// @Tags site
// @Produce json
// @Success 200 {object} service.HomePage
// @Router /home [get]
func (s *Server) GetHome(c *fiber.Ctx) error {
	page, err := s.homeService.Page(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetSession handles GET /api/session
// @Summary Current session
// @Description Signed-in user (if any), theme, navigation links and enabled features
// @Tags site
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /session [get]
func (s *Server) GetSession(c *fiber.Ctx) error {
	user := s.currentUser(c)
	var userID uint
	if user != nil {
		userID = user.ID
	}
	resp := SessionResponse{
		Authenticated: user != nil,
		User:          user,
		Theme:         s.resolveTheme(c, user),
		Nav:           service.Nav(user),
		Features:      s.featureFlags.Snapshot(userID),
	}
	return c.JSON(resp)
}

// GetPortfolio handles GET /api/portfolio/:username
// @Summary Public portfolio
// @Description Developer card, skills and published projects. Counts a view.
// @Tags portfolio
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.Portfolio
// @Failure 404 {object} models.ErrorResponse
// @Router /portfolio/{username} [get]
func (s *Server) GetPortfolio(c *fiber.Ctx) error {
	portfolio, err := s.portfolioService.Get(c.UserContext(), strings.TrimSpace(c.Params("username")))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(portfolio)
}

// GetTheme handles GET /api/preferences/theme
// @Summary Current theme
// @Description Stored preference for members, otherwise the theme cookie (default light)
// @Tags preferences
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /preferences/theme [get]
func (s *Server) GetTheme(c *fiber.Ctx) error {
	return c.JSON(themeResponse(s.resolveTheme(c, s.currentUser(c))))
}

// SetTheme handles PUT /api/preferences/theme
// @Summary Set theme
// @Tags preferences
// @Accept json
// @Produce json
// @Param request body object{theme=string} true "light or dark"
// @Success 200 {object} ThemeResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /preferences/theme [put]
func (s *Server) SetTheme(c *fiber.Ctx) error {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	theme := strings.ToLower(strings.TrimSpace(req.Theme))
	if !models.ValidTheme(theme) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Theme must be light or dark"))
	}

	if userID, ok := s.optionalUserID(c); ok {
		if _, err := s.userService.SetTheme(c.UserContext(), userID, theme); err != nil {
			return respondServiceError(c, err)
		}
	}

	setThemeCookie(c, theme)
	return c.JSON(themeResponse(theme))
}

// ToggleTheme handles POST /api/preferences/theme/toggle
// @Summary Toggle theme
// @Tags preferences
// @Produce json
// @Success 200 {object} ThemeResponse
// @Router /preferences/theme/toggle [post]
func (s *Server) ToggleTheme(c *fiber.Ctx) error {
	var theme string
	if userID, ok := s.optionalUserID(c); ok {
		user, err := s.userService.ToggleTheme(c.UserContext(), userID)
		if err != nil {
			return respondServiceError(c, err)
		}
		theme = user.Theme
	} else {
		theme = models.ToggleTheme(cookieTheme(c))
	}

	setThemeCookie(c, theme)
	return c.JSON(themeResponse(theme))
}

// currentUser returns the signed-in user, or nil for guests and stale tokens.
func (s *Server) currentUser(c *fiber.Ctx) *models.User {
	userID, ok := s.optionalUserID(c)
	if !ok {
		return nil
	}
	user, err := s.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		return nil
	}
	return user
}

func (s *Server) resolveTheme(c *fiber.Ctx, user *models.User) string {
	if user != nil && models.ValidTheme(user.Theme) {
		return user.Theme
	}
	return cookieTheme(c)
}

func cookieTheme(c *fiber.Ctx) string {
	if theme := c.Cookies(themeCookie); models.ValidTheme(theme) {
		return theme
	}
	return models.ThemeLight
}

func setThemeCookie(c *fiber.Ctx, theme string) {
	c.Cookie(&fiber.Cookie{
		Name:     themeCookie,
		Value:    theme,
		Path:     "/",
		MaxAge:   int(themeCookieMaxAge.Seconds()),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func themeResponse(theme string) ThemeResponse {
	return ThemeResponse{Theme: theme, IsDark: theme == models.ThemeDark}
}
