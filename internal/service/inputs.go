package service

import (
	"strings"
	"time"

	"sitecms/internal/model"
)

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// ServiceInput creates or replaces a service.
type ServiceInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Slug        string `json:"slug" validate:"required,max=255,slug"`
	Summary     string `json:"summary" validate:"max=500"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"max=100"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order" validate:"gte=0"`
}

func (in ServiceInput) Apply(m *model.Service) {
	m.Title = strings.TrimSpace(in.Title)
	m.Slug = in.Slug
	m.Summary = in.Summary
	m.Description = in.Description
	m.Icon = in.Icon
	m.ImageURL = in.ImageURL
	m.IsActive = boolOr(in.IsActive, true)
	m.SortOrder = in.SortOrder
}

// PackageInput creates or replaces a package. Price is in minor units.
type PackageInput struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Slug          string   `json:"slug" validate:"required,max=255,slug"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" validate:"gte=0"`
	Currency      string   `json:"currency" validate:"omitempty,len=3,uppercase"`
	BillingPeriod string   `json:"billing_period" validate:"omitempty,oneof=one_time monthly yearly"`
	Features      []string `json:"features" validate:"max=50,dive,required,max=200"`
	IsFeatured    bool     `json:"is_featured"`
	IsActive      *bool    `json:"is_active"`
	SortOrder     int      `json:"sort_order" validate:"gte=0"`
}

func (in PackageInput) Apply(m *model.Package) {
	m.Name = strings.TrimSpace(in.Name)
	m.Slug = in.Slug
	m.Description = in.Description
	m.Price = in.Price
	m.Currency = in.Currency
	if m.Currency == "" {
		m.Currency = "USD"
	}
	m.BillingPeriod = in.BillingPeriod
	m.Features = in.Features
	if m.Features == nil {
		m.Features = []string{}
	}
	m.IsFeatured = in.IsFeatured
	m.IsActive = boolOr(in.IsActive, true)
	m.SortOrder = in.SortOrder
}

// ProjectInput creates or replaces a project. Images are managed separately.
type ProjectInput struct {
	Title         string     `json:"title" validate:"required,max=255"`
	Slug          string     `json:"slug" validate:"required,max=255,slug"`
	Client        string     `json:"client" validate:"max=255"`
	Summary       string     `json:"summary" validate:"max=500"`
	Description   string     `json:"description"`
	CoverImageURL string     `json:"cover_image_url" validate:"omitempty,url"`
	ServiceID     *string    `json:"service_id" validate:"omitempty,uuid"`
	CompletedAt   *time.Time `json:"completed_at"`
	IsFeatured    bool       `json:"is_featured"`
	IsPublished   bool       `json:"is_published"`
	SortOrder     int        `json:"sort_order" validate:"gte=0"`
}

func (in ProjectInput) Apply(m *model.Project) {
	m.Title = strings.TrimSpace(in.Title)
	m.Slug = in.Slug
	m.Client = in.Client
	m.Summary = in.Summary
	m.Description = in.Description
	m.CoverImageURL = in.CoverImageURL
	m.ServiceID = in.ServiceID
	if m.ServiceID != nil && *m.ServiceID == "" {
		m.ServiceID = nil
	}
	m.Service = nil
	m.CompletedAt = in.CompletedAt
	m.IsFeatured = in.IsFeatured
	m.IsPublished = in.IsPublished
	m.SortOrder = in.SortOrder
}

// ReviewInput creates or replaces a review from the backoffice.
type ReviewInput struct {
	AuthorName  string `json:"author_name" validate:"required,max=255"`
	AuthorTitle string `json:"author_title" validate:"max=255"`
	Company     string `json:"company" validate:"max=255"`
	Content     string `json:"content" validate:"required,max=5000"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	AvatarURL   string `json:"avatar_url" validate:"omitempty,url"`
	IsPublished bool   `json:"is_published"`
	SortOrder   int    `json:"sort_order" validate:"gte=0"`
}

func (in ReviewInput) Apply(m *model.Review) {
	m.AuthorName = strings.TrimSpace(in.AuthorName)
	m.AuthorTitle = in.AuthorTitle
	m.Company = in.Company
	m.Content = in.Content
	m.Rating = in.Rating
	m.AvatarURL = in.AvatarURL
	m.IsPublished = in.IsPublished
	m.SortOrder = in.SortOrder
}

// ReviewSubmission is a testimonial posted from the public site. It is stored unpublished.
type ReviewSubmission struct {
	AuthorName  string `json:"author_name" validate:"required,max=255"`
	AuthorTitle string `json:"author_title" validate:"max=255"`
	Company     string `json:"company" validate:"max=255"`
	Content     string `json:"content" validate:"required,max=2000"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
}

// GalleryInput creates or replaces a gallery item that points at an existing image URL.
type GalleryInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category" validate:"max=100"`
	ImageURL    string `json:"image_url" validate:"required,url"`
	IsPublished *bool  `json:"is_published"`
	SortOrder   int    `json:"sort_order" validate:"gte=0"`
}

func (in GalleryInput) Apply(m *model.GalleryItem) {
	if m.ImageURL != in.ImageURL {
		// the stored object no longer backs this item
		m.StorageKey = ""
	}
	m.Title = strings.TrimSpace(in.Title)
	m.Description = in.Description
	m.Category = in.Category
	m.ImageURL = in.ImageURL
	m.IsPublished = boolOr(in.IsPublished, true)
	m.SortOrder = in.SortOrder
}

// StatInput creates or replaces a headline stat.
type StatInput struct {
	Label     string `json:"label" validate:"required,max=100"`
	Value     string `json:"value" validate:"required,max=50"`
	Suffix    string `json:"suffix" validate:"max=20"`
	Icon      string `json:"icon" validate:"max=100"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

func (in StatInput) Apply(m *model.Stat) {
	m.Label = strings.TrimSpace(in.Label)
	m.Value = in.Value
	m.Suffix = in.Suffix
	m.Icon = in.Icon
	m.SortOrder = in.SortOrder
}

// FAQInput creates or replaces a FAQ entry.
type FAQInput struct {
	Question  string `json:"question" validate:"required,max=500"`
	Answer    string `json:"answer" validate:"required"`
	Category  string `json:"category" validate:"max=100"`
	IsActive  *bool  `json:"is_active"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

func (in FAQInput) Apply(m *model.FAQ) {
	m.Question = strings.TrimSpace(in.Question)
	m.Answer = in.Answer
	m.Category = in.Category
	m.IsActive = boolOr(in.IsActive, true)
	m.SortOrder = in.SortOrder
}

// SEOInput creates or replaces the metadata of one page path.
type SEOInput struct {
	PagePath     string `json:"page_path" validate:"required,startswith=/,max=255"`
	Title        string `json:"title" validate:"max=255"`
	Description  string `json:"description" validate:"max=500"`
	Keywords     string `json:"keywords" validate:"max=500"`
	OGImageURL   string `json:"og_image_url" validate:"omitempty,url"`
	CanonicalURL string `json:"canonical_url" validate:"omitempty,url"`
	NoIndex      bool   `json:"no_index"`
}

func (in SEOInput) Apply(m *model.SEO) {
	m.PagePath = in.PagePath
	m.Title = in.Title
	m.Description = in.Description
	m.Keywords = in.Keywords
	m.OGImageURL = in.OGImageURL
	m.CanonicalURL = in.CanonicalURL
	m.NoIndex = in.NoIndex
}

// AboutInput replaces the about block.
type AboutInput struct {
	Headline string `json:"headline" validate:"required,max=255"`
	Body     string `json:"body" validate:"required"`
	Mission  string `json:"mission"`
	Vision   string `json:"vision"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

func (in AboutInput) Apply(m *model.AboutContent) {
	m.Headline = in.Headline
	m.Body = in.Body
	m.Mission = in.Mission
	m.Vision = in.Vision
	m.ImageURL = in.ImageURL
}

// ContactInput is a public contact form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Subject string `json:"subject" validate:"max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactStatusInput changes the status of a submission.
type ContactStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending replied archived"`
}

// SubscribeInput adds an email to the newsletter.
type SubscribeInput struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// UnsubscribeInput removes a subscriber by the token mailed to them.
type UnsubscribeInput struct {
	Token string `json:"token" validate:"required,max=64"`
}

// SettingInput is one value in a settings update.
type SettingInput struct {
	Value    string `json:"value" validate:"max=10000"`
	IsPublic bool   `json:"is_public"`
}

// LoginInput holds backoffice credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordInput starts a password reset.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput completes a password reset with the mailed code.
type ResetPasswordInput struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserUpdateInput is what an admin may change on a backoffice user.
type UserUpdateInput struct {
	Name     string `json:"name" validate:"max=255"`
	Role     string `json:"role" validate:"required,oneof=admin editor"`
	IsActive *bool  `json:"is_active"`
}

// ProjectImageInput attaches an already hosted image to a project.
type ProjectImageInput struct {
	URL       string `json:"url" validate:"required,url"`
	Caption   string `json:"caption" validate:"max=255"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}
