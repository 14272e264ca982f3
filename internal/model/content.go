package model

import "time"

// Service is an offering shown on the marketing site.
type Service struct {
	Base
	SoftDelete
	Sortable
	Title       string `json:"title" gorm:"not null"`
	Slug        string `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	ImageURL    string `json:"image_url"`
	IsActive    bool   `json:"is_active" gorm:"not null;index"`
}

// Package is a priced bundle. Price is stored in minor units.
type Package struct {
	Base
	SoftDelete
	Sortable
	Name          string   `json:"name" gorm:"not null"`
	Slug          string   `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" gorm:"not null;default:0"`
	Currency      string   `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	BillingPeriod string   `json:"billing_period"`
	Features      []string `json:"features" gorm:"type:jsonb;serializer:json"`
	IsFeatured    bool     `json:"is_featured" gorm:"not null;default:false"`
	IsActive      bool     `json:"is_active" gorm:"not null;index"`
}

// Project is a portfolio entry.
type Project struct {
	Base
	SoftDelete
	Sortable
	Title         string         `json:"title" gorm:"not null"`
	Slug          string         `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Client        string         `json:"client"`
	Summary       string         `json:"summary"`
	Description   string         `json:"description"`
	CoverImageURL string         `json:"cover_image_url"`
	ServiceID     *string        `json:"service_id" gorm:"type:uuid;index"`
	Service       *Service       `json:"service,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at"`
	IsFeatured    bool           `json:"is_featured" gorm:"not null;default:false"`
	IsPublished   bool           `json:"is_published" gorm:"not null;default:false;index"`
	Images        []ProjectImage `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// ProjectImage is one picture in a project's gallery.
type ProjectImage struct {
	Base
	Sortable
	ProjectID  string `json:"project_id" gorm:"type:uuid;not null;index"`
	URL        string `json:"url" gorm:"not null"`
	StorageKey string `json:"storage_key"`
	Caption    string `json:"caption"`
}

// Review is a client testimonial.
type Review struct {
	Base
	SoftDelete
	Sortable
	AuthorName  string `json:"author_name" gorm:"not null"`
	AuthorTitle string `json:"author_title"`
	Company     string `json:"company"`
	Content     string `json:"content" gorm:"not null"`
	Rating      int    `json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	AvatarURL   string `json:"avatar_url"`
	IsPublished bool   `json:"is_published" gorm:"not null;default:false;index"`
}

// GalleryItem is a standalone image in the public gallery.
type GalleryItem struct {
	Base
	SoftDelete
	Sortable
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"index"`
	ImageURL    string `json:"image_url" gorm:"not null"`
	StorageKey  string `json:"storage_key"`
	IsPublished bool   `json:"is_published" gorm:"not null;index"`
}

// Stat is a headline number ("150+ projects delivered").
type Stat struct {
	Base
	SoftDelete
	Sortable
	Label  string `json:"label" gorm:"not null"`
	Value  string `json:"value" gorm:"not null"`
	Suffix string `json:"suffix"`
	Icon   string `json:"icon"`
}

// FAQ is a question and answer pair.
type FAQ struct {
	Base
	SoftDelete
	Sortable
	Question string `json:"question" gorm:"not null"`
	Answer   string `json:"answer" gorm:"not null"`
	Category string `json:"category" gorm:"index"`
	IsActive bool   `json:"is_active" gorm:"not null;index"`
}

// TableName keeps the plural table name readable.
func (FAQ) TableName() string { return "faqs" }
