package models

import (
	"time"

	"gorm.io/gorm"
)

// Project represents a portfolio project owned by a user.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image"`
	Tech        []string       `gorm:"type:text;serializer:json" json:"tech"`
	Stars       int            `gorm:"not null;default:0" json:"stars"`
	Status      string         `gorm:"not null;default:Published;index" json:"status"`
	LiveURL     string         `json:"live_url,omitempty"`
	GithubURL   string         `json:"github_url,omitempty"`
	Featured    bool           `gorm:"not null;default:false" json:"featured"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsPublished reports whether the project shows on the public portfolio.
func (p *Project) IsPublished() bool {
	return p.Status == StatusPublished
}
