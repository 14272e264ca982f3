package main

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sitecms/internal/auth"
	"sitecms/internal/config"
	handlers "sitecms/internal/http/handler"
	"sitecms/internal/mailer"
	"sitecms/internal/model"
	"sitecms/internal/repository/postgres"
	"sitecms/internal/revalidate"
	"sitecms/internal/service"
	"sitecms/internal/storage"
)

// buildServices wires repositories into services.
func buildServices(
	cfg *config.AppConfig,
	gdb *gorm.DB,
	objStore storage.Storage,
	provider auth.Provider,
	mail mailer.Mailer,
	reval revalidate.Revalidator,
	lggr *zap.Logger,
) handlers.Services {
	sorted := postgres.WithDefaultOrder(postgres.SortedOrder)

	serviceRepo := postgres.NewStore[model.Service](gdb, sorted)
	packageRepo := postgres.NewStore[model.Package](gdb, sorted)
	reviewRepo := postgres.NewStore[model.Review](gdb, sorted)
	galleryRepo := postgres.NewStore[model.GalleryItem](gdb, sorted)
	statRepo := postgres.NewStore[model.Stat](gdb, sorted)
	faqRepo := postgres.NewStore[model.FAQ](gdb, sorted)
	imageRepo := postgres.NewStore[model.ProjectImage](gdb, sorted)
	seoRepo := postgres.NewStore[model.SEO](gdb, postgres.WithDefaultOrder("page_path ASC"))
	contactRepo := postgres.NewStore[model.ContactSubmission](gdb)
	userRepo := postgres.NewStore[model.User](gdb)
	roleRepo := postgres.NewStore[model.Role](gdb, postgres.WithDefaultOrder("name ASC"))
	auditRepo := postgres.NewStore[model.AuditLog](gdb)
	aboutRepo := postgres.NewStore[model.AboutContent](gdb)
	projectRepo := postgres.NewProjectPostgres(gdb)
	newsletterRepo := postgres.NewNewsletterPostgres(gdb)

	audit := service.NewAuditService(auditRepo)
	deps := service.Deps{Audit: audit, Revalidator: reval, Logger: lggr}
	media := service.NewMediaService(objStore, int64(cfg.MinIO.MaxUploadMB)*1024*1024, deps)

	return handlers.Services{
		Services:   service.NewContentService[model.Service, service.ServiceInput](serviceRepo, service.ServiceContent, deps),
		Packages:   service.NewContentService[model.Package, service.PackageInput](packageRepo, service.PackageContent, deps),
		Projects:   service.NewProjectService(projectRepo, imageRepo, serviceRepo, media, deps),
		Reviews:    service.NewReviewService(reviewRepo, deps),
		Gallery:    service.NewGalleryService(galleryRepo, media, deps),
		Stats:      service.NewContentService[model.Stat, service.StatInput](statRepo, service.StatContent, deps),
		FAQs:       service.NewContentService[model.FAQ, service.FAQInput](faqRepo, service.FAQContent, deps),
		SEO:        service.NewSEOService(seoRepo, deps),
		About:      service.NewAboutService(aboutRepo, deps),
		Settings:   service.NewSettingService(postgres.NewSettingPostgres(gdb), deps),
		Contacts:   service.NewContactService(contactRepo, mail, cfg.SMTP.NotifyEmail, deps),
		Newsletter: service.NewNewsletterService(newsletterRepo, mail, cfg.SiteURL, deps),
		Media:      media,
		Auth: service.NewAuthService(provider, userRepo, roleRepo, postgres.NewResetCodePostgres(gdb),
			mail, cfg.Auth.AdminEmails, deps),
		Users:     service.NewUserService(userRepo, roleRepo, deps),
		Audit:     audit,
		Dashboard: service.NewDashboardService(service.DashboardRepos{
			Services:   serviceRepo,
			Packages:   packageRepo,
			Projects:   projectRepo,
			Reviews:    reviewRepo,
			Gallery:    galleryRepo,
			FAQs:       faqRepo,
			Contacts:   contactRepo,
			Newsletter: newsletterRepo,
		}),
	}
}
