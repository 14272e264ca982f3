package model

// AboutContent is the singleton "about us" block.
type AboutContent struct {
	Base
	Headline string `json:"headline"`
	Body     string `json:"body"`
	Mission  string `json:"mission"`
	Vision   string `json:"vision"`
	ImageURL string `json:"image_url"`
}

// TableName pins the singleton table name.
func (AboutContent) TableName() string { return "about_content" }

// Setting is a key/value site setting. Public settings are exposed to the site.
type Setting struct {
	Base
	Key      string `json:"key" gorm:"type:varchar(100);not null;uniqueIndex"`
	Value    string `json:"value"`
	IsPublic bool   `json:"is_public" gorm:"not null;default:false"`
}

// SEO holds metadata for one page path.
type SEO struct {
	Base
	SoftDelete
	PagePath     string `json:"page_path" gorm:"type:varchar(255);not null;uniqueIndex"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Keywords     string `json:"keywords"`
	OGImageURL   string `json:"og_image_url"`
	CanonicalURL string `json:"canonical_url"`
	NoIndex      bool   `json:"no_index" gorm:"not null;default:false"`
}

// TableName keeps the acronym intact.
func (SEO) TableName() string { return "seo" }
