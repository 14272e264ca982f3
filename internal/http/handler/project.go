package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/model"
	"sitecms/internal/service"
)

// ProjectHandler adds image management to the project CRUD routes.
type ProjectHandler struct {
	*ContentHandler[model.Project, service.ProjectInput]
	svc service.ProjectService
}

func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{ContentHandler: NewContentHandler[model.Project, service.ProjectInput](svc), svc: svc}
}

// AddImage attaches an image to a project. A multipart body with a "file" field
// is uploaded to storage; a JSON body references an image hosted elsewhere.
//
// @Summary  Attach a project image
// @Tags     admin
// @Accept   json,mpfd
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "project id"
// @Param    file formData file false "image to upload"
// @Param    caption formData string false "caption"
// @Success  201 {object} model.ProjectImage
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/projects/{id}/images [post]
func (h *ProjectHandler) AddImage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return nil
		}

		var (
			img *model.ProjectImage
			err error
		)
		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			up, f, ok := formUpload(c)
			if !ok {
				return nil
			}
			defer f.Close()
			img, err = h.svc.UploadImage(c.UserContext(), id, up, c.FormValue("caption"))
		} else {
			var in service.ProjectImageInput
			if !bindJSON(c, &in) {
				return nil
			}
			img, err = h.svc.AddImage(c.UserContext(), id, in)
		}
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(img)
	}
}

// RemoveImage deletes an image row and, for uploaded files, its stored object.
//
// @Summary  Remove a project image
// @Tags     admin
// @Security BearerAuth
// @Param    id path string true "project id"
// @Param    imageId path string true "image id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/projects/{id}/images/{imageId} [delete]
func (h *ProjectHandler) RemoveImage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return nil
		}
		imageID, ok := paramID(c, "imageId")
		if !ok {
			return nil
		}
		if err := h.svc.RemoveImage(c.UserContext(), id, imageID); err != nil {
			return handleServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ReorderImages takes {"ids": [...]} of the project's images in display order.
//
// @Summary  Reorder project images
// @Tags     admin
// @Accept   json
// @Security BearerAuth
// @Param    id path string true "project id"
// @Param    body body service.ReorderInput true "image ids in display order"
// @Success  204
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/projects/{id}/images/reorder [put]
func (h *ProjectHandler) ReorderImages() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return nil
		}
		var in service.ReorderInput
		if !bindJSON(c, &in) {
			return nil
		}
		if err := h.svc.ReorderImages(c.UserContext(), id, in.IDs); err != nil {
			return handleServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func (h *ProjectHandler) mount(r fiber.Router) {
	h.ContentHandler.mount(r, true)
	r.Post("/:id/images", h.AddImage())
	r.Put("/:id/images/reorder", h.ReorderImages())
	r.Delete("/:id/images/:imageId", h.RemoveImage())
}
