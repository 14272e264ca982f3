package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// uploadPrefix is the storage folder for images uploaded from the editor.
const uploadPrefix = "uploads"

// UploadMedia stores an image from the multipart field "file" and returns its key and URL.
//
// @Summary  Upload an image
// @Tags     admin
// @Accept   mpfd
// @Produce  json
// @Security BearerAuth
// @Param    file formData file true "image"
// @Success  201 {object} service.StoredObject
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/uploads [post]
func UploadMedia(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		up, f, ok := formUpload(c)
		if !ok {
			return nil
		}
		defer f.Close()

		obj, err := svc.Upload(c.UserContext(), uploadPrefix, up)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(obj)
	}
}
