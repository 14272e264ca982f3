package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/model"
	"sitecms/internal/service"
)

type SEOHandler struct {
	*ContentHandler[model.SEO, service.SEOInput]
	svc service.SEOService
}

func NewSEOHandler(svc service.SEOService) *SEOHandler {
	return &SEOHandler{ContentHandler: NewContentHandler[model.SEO, service.SEOInput](svc), svc: svc}
}

// GetByPath serves GET /api/seo?path=/services.
//
// @Summary  SEO metadata for a page
// @Tags     public
// @Produce  json
// @Param    path query string true "page path"
// @Success  200 {object} model.SEO
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/seo [get]
func (h *SEOHandler) GetByPath() fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Query("path")
		if path == "" {
			return writeFieldError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", "validation failed",
				map[string]string{"path": "required"})
		}
		out, err := h.svc.GetByPath(c.UserContext(), path)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(out)
	}
}
