package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	MaxTitleLength   = 200
	MaxExcerptLength = 500
	MaxTags          = 8
	MaxTagLength     = 32
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slugify lowercases title, strips accents and joins words with hyphens:
// "Node.js Security Best Practices" becomes "node-js-security-best-practices".
func Slugify(title string) string {
	var sb strings.Builder
	dash := false
	for _, r := range norm.NFKD.String(title) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			dash = false
			sb.WriteRune(unicode.ToLower(r))
		default:
			dash = true
		}
	}
	return sb.String()
}

// ValidateSlug checks the lowercase-hyphenated slug format.
func ValidateSlug(slug string) error {
	if len(slug) < 3 || len(slug) > 120 || !slugRegex.MatchString(slug) {
		return errors.New("slug must be 3-120 lowercase letters, numbers and single hyphens")
	}
	return nil
}

// ValidateTitle requires a non-blank title of at most MaxTitleLength characters.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

// ValidateExcerpt limits the excerpt length.
func ValidateExcerpt(excerpt string) error {
	if utf8.RuneCountInString(excerpt) > MaxExcerptLength {
		return fmt.Errorf("excerpt must be at most %d characters", MaxExcerptLength)
	}
	return nil
}

// ValidateTags limits the number and length of tag names.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTags {
		return fmt.Errorf("at most %d tags are allowed", MaxTags)
	}
	for _, t := range tags {
		if utf8.RuneCountInString(strings.TrimSpace(t)) > MaxTagLength {
			return fmt.Errorf("tag %q is longer than %d characters", t, MaxTagLength)
		}
	}
	return nil
}
