package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// ListUsers lists backoffice accounts.
//
// @Summary  List users
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    limit query int false "page size"
// @Param    offset query int false "rows to skip"
// @Param    q query string false "search text"
// @Success  200 {object} map[string]any
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, ok := parseListParams(c)
		if !ok {
			return nil
		}
		res, err := svc.List(c.UserContext(), params)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetUser handles GET /api/admin/users/{id}.
//
// @Summary  Get a user
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "id"
// @Success  200 {object} model.User
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/users/{id} [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return nil
		}
		out, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// UpdateUser changes a user's name, role or active flag.
//
// @Summary  Update a user
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "id"
// @Param    body body service.UserUpdateInput true "user"
// @Success  200 {object} model.User
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/users/{id} [put]
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return nil
		}
		var in service.UserUpdateInput
		if !bindJSON(c, &in) {
			return nil
		}
		out, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteUser handles DELETE /api/admin/users/{id}.
//
// @Summary  Delete a user
// @Tags     admin
// @Security BearerAuth
// @Param    id path string true "id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/users/{id} [delete]
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return nil
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return handleServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListRoles handles GET /api/admin/roles.
//
// @Summary  List roles
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} model.Role
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/roles [get]
func ListRoles(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, err := svc.Roles(c.UserContext())
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": roles, "total": len(roles)})
	}
}
