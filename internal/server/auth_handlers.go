package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/observability"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles POST /api/auth/register
// @Summary Register
// @Description Create a developer account and sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,full_name=string,password=string} true "Registration request"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}
	for _, check := range []func() error{
		func() error { return validation.ValidateUsername(req.Username) },
		func() error { return validation.ValidateEmail(req.Email) },
		func() error { return validation.ValidatePassword(req.Password) },
	} {
		if err := check(); err != nil {
			observability.RecordAuth("register", false)
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	existing, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		return s.registrationFailed(c, err)
	}
	if existing == nil {
		existing, err = s.userRepo.GetByUsername(c.UserContext(), req.Username)
		if err != nil {
			return s.registrationFailed(c, err)
		}
	}
	if existing != nil {
		observability.RecordAuth("register", false)
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("User already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return s.registrationFailed(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: string(hashedPassword),
		Avatar:   models.DefaultAvatar,
		Theme:    models.ThemeLight,
		Skills:   []string{},
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		if models.ErrorCode(err) == models.CodeConflict {
			observability.RecordAuth("register", false)
			return respondServiceError(c, err)
		}
		return s.registrationFailed(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return s.registrationFailed(c, err)
	}

	observability.RecordAuth("register", true)
	return c.Status(fiber.StatusCreated).JSON(AuthResponse{Token: token, User: user})
}

func (s *Server) registrationFailed(c *fiber.Ctx, err error) error {
	observability.RecordAuth("register", false)
	middleware.Logger.ErrorContext(c.UserContext(), "registration failed", "error", err)
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewRegistrationFailedError(err))
}

// Login handles POST /api/auth/login
// @Summary Login
// @Description Authenticate with email and password and return a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	// Unknown email and wrong password are indistinguishable to the caller.
	user, err := s.userRepo.GetByEmail(c.UserContext(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || user == nil {
		observability.RecordAuth("login", false)
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewLoginFailedError())
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		observability.RecordAuth("login", false)
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.NewLoginFailedError())
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.RecordAuth("login", true)
	return c.JSON(AuthResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Revoke the current token until it expires
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	_, claims, err := s.parseToken(c.UserContext(), bearerToken(c))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, err)
	}

	jti, _ := claims["jti"].(string)
	exp, err := claims.GetExpirationTime()
	if jti != "" && err == nil && exp != nil {
		if err := cache.Blacklist(c.UserContext(), jti, time.Until(exp.Time)); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Description Validate the token and return the signed-in user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.UserContext(), userID)
	if err != nil {
		// A valid token for a deleted account is no longer a session.
		if models.ErrorCode(err) == models.CodeNotFound {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User no longer exists"))
		}
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"iss":      tokenIssuer,                            // Issuer
		"aud":      tokenAudience,                          // Audience
		"exp":      now.Add(tokenTTL).Unix(),               // Expiration (7 days)
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      s.generateJTI(),                        // JWT ID (revocation handle)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID used as the revocation key
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
