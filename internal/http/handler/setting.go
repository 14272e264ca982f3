package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// PublicSettings returns public settings as a flat key/value object.
//
// @Summary  Public site settings
// @Tags     public
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /api/settings [get]
func PublicSettings(svc service.SettingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.ListPublic(c.UserContext())
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// ListSettings returns every setting, private ones included.
//
// @Summary  List settings
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} model.Setting
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/settings [get]
func ListSettings(svc service.SettingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.ListAll(c.UserContext())
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": out, "total": len(out)})
	}
}

// UpsertSettings takes {"key": {"value": "...", "is_public": true}, ...}.
//
// @Summary  Save settings
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body map[string]service.SettingInput true "settings by key"
// @Success  200 {array} model.Setting
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/settings [put]
func UpsertSettings(svc service.SettingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in map[string]service.SettingInput
		if !bindJSON(c, &in) {
			return nil
		}
		out, err := svc.Upsert(c.UserContext(), in)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": out, "total": len(out)})
	}
}
