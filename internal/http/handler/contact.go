package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// SubmitContact stores a contact form submission.
//
// @Summary  Send a contact message
// @Tags     public
// @Accept   json
// @Produce  json
// @Param    body body service.ContactInput true "message"
// @Success  201 {object} map[string]string
// @Failure  400 {object} errorPayload
// @Router   /api/contact [post]
func SubmitContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ContactInput
		if !bindJSON(c, &in) {
			return nil
		}
		out, err := svc.Submit(c.UserContext(), in, c.IP())
		if err != nil {
			return handleServiceError(c, err)
		}
		// Visitors only get an acknowledgement, not the stored row.
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": out.ID, "status": out.Status})
	}
}

// ListContacts lists submissions, optionally filtered by ?status=.
//
// @Summary  List contact messages
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    limit query int false "page size"
// @Param    offset query int false "rows to skip"
// @Param    q query string false "search text"
// @Param    status query string false "pending, replied or archived"
// @Success  200 {object} map[string]any
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/contacts [get]
func ListContacts(svc service.ContactService) fiber.Handler {
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

// GetContact handles GET /api/admin/contacts/{id}.
//
// @Summary  Get a contact message
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "id"
// @Success  200 {object} model.ContactSubmission
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/contacts/{id} [get]
func GetContact(svc service.ContactService) fiber.Handler {
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

// UpdateContactStatus takes {"status": "pending|replied|archived"}.
//
// @Summary  Set a contact message status
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "id"
// @Param    body body service.ContactStatusInput true "status"
// @Success  200 {object} model.ContactSubmission
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/contacts/{id}/status [patch]
func UpdateContactStatus(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return nil
		}
		var in service.ContactStatusInput
		if !bindJSON(c, &in) {
			return nil
		}
		out, err := svc.UpdateStatus(c.UserContext(), id, in)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteContact handles DELETE /api/admin/contacts/{id}.
//
// @Summary  Delete a contact message
// @Tags     admin
// @Security BearerAuth
// @Param    id path string true "id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/contacts/{id} [delete]
func DeleteContact(svc service.ContactService) fiber.Handler {
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
