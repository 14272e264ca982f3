package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// Dashboard returns the backoffice counters.
//
// @Summary  Dashboard counters
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} service.DashboardStats
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/dashboard [get]
func Dashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(stats)
	}
}

// ListAuditLogs supports ?entity=, ?action= and ?user_id= filters.
//
// @Summary  List audit log entries
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    limit query int false "page size"
// @Param    offset query int false "rows to skip"
// @Param    q query string false "search text"
// @Param    entity query string false "entity name"
// @Param    action query string false "action"
// @Param    user_id query string false "actor id"
// @Success  200 {object} map[string]any
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/audit-logs [get]
func ListAuditLogs(svc service.AuditService) fiber.Handler {
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
