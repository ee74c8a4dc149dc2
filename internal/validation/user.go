// Package validation holds input rules shared by handlers and services.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinPasswordLength = 12
	MaxPasswordLength = 128
	MaxBioLength      = 500
	MaxSkills         = 30
	MaxSkillLength    = 40
)

var (
	usernameRegex       = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{1,28}[a-zA-Z0-9]$`)
	githubUsernameRegex = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,37})$`)
)

// ValidateUsername accepts 3-30 letters, digits, '_' and '-', not starting or ending with a separator.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return errors.New("username must be 3-30 characters of letters, numbers, '_' or '-' and start and end with a letter or number")
	}
	return nil
}

// ValidateEmail checks for a bare address such as john@example.com.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword requires 12-128 characters with upper and lower case letters, a digit and a symbol.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	if n > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d characters", MaxPasswordLength)
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return errors.New("password must contain upper and lower case letters, a number and a special character")
	}
	return nil
}

// ValidateURL accepts empty strings and absolute http(s) URLs.
func ValidateURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an http or https URL", field)
	}
	return nil
}

// ValidateGithubUsername accepts empty strings and GitHub's login format.
func ValidateGithubUsername(name string) error {
	if name == "" {
		return nil
	}
	if !githubUsernameRegex.MatchString(name) || strings.HasSuffix(name, "-") || strings.Contains(name, "--") {
		return errors.New("invalid GitHub username")
	}
	return nil
}

// ValidateBio limits the bio to MaxBioLength characters.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLength {
		return fmt.Errorf("bio must be at most %d characters", MaxBioLength)
	}
	return nil
}

// NormalizeSkills trims entries, drops blanks and case-insensitive duplicates, and enforces limits.
func NormalizeSkills(skills []string) ([]string, error) {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if utf8.RuneCountInString(s) > MaxSkillLength {
			return nil, fmt.Errorf("skill %q is longer than %d characters", s, MaxSkillLength)
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	if len(out) > MaxSkills {
		return nil, fmt.Errorf("at most %d skills are allowed", MaxSkills)
	}
	return out, nil
}
