package service

import (
	"context"
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput carries a partial profile update; nil fields are left unchanged.
type UpdateProfileInput struct {
	FullName       *string   `json:"full_name"`
	Email          *string   `json:"email"`
	Bio            *string   `json:"bio"`
	Location       *string   `json:"location"`
	GithubUsername *string   `json:"github_username"`
	LinkedinURL    *string   `json:"linkedin_url"`
	WebsiteURL     *string   `json:"website_url"`
	Skills         *[]string `json:"skills"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

const maxFullNameLen = 100

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, models.NewValidationError("Full name is required")
		}
		if len([]rune(name)) > maxFullNameLen {
			return nil, models.NewValidationError("Full name too long (max 100 characters)")
		}
		user.FullName = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if err := validation.ValidateEmail(email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if email != user.Email {
			existing, err := s.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, models.NewConflictError("Email is already in use")
			}
			user.Email = email
		}
	}
	if in.Bio != nil {
		bio := strings.TrimSpace(*in.Bio)
		if err := validation.ValidateBio(bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = bio
	}
	if in.Location != nil {
		user.Location = strings.TrimSpace(*in.Location)
	}
	if in.GithubUsername != nil {
		gh := strings.TrimPrefix(strings.TrimSpace(*in.GithubUsername), "@")
		if err := validation.ValidateGithubUsername(gh); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.GithubUsername = gh
	}
	if in.LinkedinURL != nil {
		u := strings.TrimSpace(*in.LinkedinURL)
		if err := validation.ValidateURL("linkedin_url", u); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.LinkedinURL = u
	}
	if in.WebsiteURL != nil {
		u := strings.TrimSpace(*in.WebsiteURL)
		if err := validation.ValidateURL("website_url", u); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.WebsiteURL = u
	}
	if in.Skills != nil {
		skills, err := validation.NormalizeSkills(*in.Skills)
		if err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Skills = skills
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetTheme stores the user's theme preference.
func (s *UserService) SetTheme(ctx context.Context, userID uint, theme string) (*models.User, error) {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !models.ValidTheme(theme) {
		return nil, models.NewValidationError("Theme must be light or dark")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Theme == theme {
		return user, nil
	}
	user.Theme = theme
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleTheme flips the user's theme preference.
func (s *UserService) ToggleTheme(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.SetTheme(ctx, userID, models.ToggleTheme(user.Theme))
}
