package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// GetAbout handles GET /api/about.
//
// @Summary  About block
// @Tags     public
// @Produce  json
// @Success  200 {object} model.AboutContent
// @Router   /api/about [get]
func GetAbout(svc service.AboutService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.Get(c.UserContext())
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// UpdateAbout replaces the about block, creating it on first save.
//
// @Summary  Replace the about block
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body service.AboutInput true "about"
// @Success  200 {object} model.AboutContent
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/about [put]
func UpdateAbout(svc service.AboutService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.AboutInput
		if !bindJSON(c, &in) {
			return nil
		}
		out, err := svc.Update(c.UserContext(), in)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(out)
	}
}
