// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Theme values accepted for the UI preference.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// User represents a DevConnect member.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	FullName       string         `json:"full_name"`
	Bio            string         `gorm:"type:text" json:"bio"`
	Avatar         string         `json:"avatar"`
	Location       string         `json:"location"`
	GithubUsername string         `json:"github_username,omitempty"`
	LinkedinURL    string         `json:"linkedin_url,omitempty"`
	WebsiteURL     string         `json:"website_url,omitempty"`
	Skills         []string       `gorm:"type:text;serializer:json" json:"skills"`
	Theme          string         `gorm:"not null;default:light" json:"theme"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// DefaultAvatar is shown for members who never uploaded a picture.
const DefaultAvatar = "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=400"

// GithubURL derives the profile link from the GitHub username.
func (u *User) GithubURL() string {
	if u.GithubUsername == "" {
		return ""
	}
	return "https://github.com/" + u.GithubUsername
}

// JoinDate formats the account creation month the way portfolios display it.
func (u *User) JoinDate() string {
	return u.CreatedAt.Format("January 2006")
}

// IsDark reports whether the stored theme preference is dark.
func (u *User) IsDark() bool {
	return u.Theme == ThemeDark
}

// ValidTheme reports whether t is a supported theme value.
func ValidTheme(t string) bool {
	return t == ThemeLight || t == ThemeDark
}

// ToggleTheme returns the opposite theme of t.
func ToggleTheme(t string) string {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
