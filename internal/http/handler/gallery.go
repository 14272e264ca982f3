package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/model"
	"sitecms/internal/service"
)

type GalleryHandler struct {
	*ContentHandler[model.GalleryItem, service.GalleryInput]
	svc service.GalleryService
}

func NewGalleryHandler(svc service.GalleryService) *GalleryHandler {
	return &GalleryHandler{ContentHandler: NewContentHandler[model.GalleryItem, service.GalleryInput](svc), svc: svc}
}

// Upload stores an image and creates a published gallery item from form fields
// file, title, description and category.
//
// @Summary  Upload a gallery image
// @Tags     admin
// @Accept   mpfd
// @Produce  json
// @Security BearerAuth
// @Param    file formData file true "image"
// @Param    title formData string true "title"
// @Success  201 {object} model.GalleryItem
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/gallery/upload [post]
func (h *GalleryHandler) Upload() fiber.Handler {
	return func(c *fiber.Ctx) error {
		up, f, ok := formUpload(c)
		if !ok {
			return nil
		}
		defer f.Close()

		in := service.GalleryUploadInput{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Category:    c.FormValue("category"),
		}
		item, err := h.svc.Upload(c.UserContext(), up, in)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

func (h *GalleryHandler) mount(r fiber.Router) {
	// Registered ahead of the CRUD routes so it does not shadow as /:id.
	r.Post("/upload", h.Upload())
	h.ContentHandler.mount(r, true)
}
