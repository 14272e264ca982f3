package model

// All lists every persisted entity in dependency order, for migrations.
func All() []any {
	return []any{
		&Role{},
		&User{},
		&PasswordResetCode{},
		&Service{},
		&Package{},
		&Project{},
		&ProjectImage{},
		&Review{},
		&GalleryItem{},
		&Stat{},
		&FAQ{},
		&AboutContent{},
		&Setting{},
		&SEO{},
		&ContactSubmission{},
		&NewsletterSubscription{},
		&AuditLog{},
	}
}
