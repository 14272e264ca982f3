package main

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"sitecms/internal/config"
	handlers "sitecms/internal/http/handler"
)

// newApp builds the Fiber app. X-Forwarded-For is only read from the proxies
// listed in cfg.TrustedProxies; every other peer is identified by its socket address.
func newApp(cfg *config.AppConfig, lggr *zap.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler:            handlers.ErrorHandler(lggr.Named("http")),
		BodyLimit:               (cfg.MinIO.MaxUploadMB + 1) * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          cfg.TrustedProxies,
		EnableIPValidation:      true,
	})
}
