package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// ContentHandler exposes a ContentService over HTTP. One instance serves one content type.
type ContentHandler[T any, I service.Input[T]] struct {
	svc service.ContentService[T, I]
}

func NewContentHandler[T any, I service.Input[T]](svc service.ContentService[T, I]) *ContentHandler[T, I] {
	return &ContentHandler[T, I]{svc: svc}
}

// ListPublic lists rows visible on the site.
//
// @Summary  List published content
// @Tags     public
// @Produce  json
// @Param    limit query int false "page size"
// @Param    offset query int false "rows to skip"
// @Param    q query string false "search text"
// @Param    category query string false "gallery and faq category"
// @Param    service query string false "project service slug"
// @Success  200 {object} map[string]any
// @Failure  400 {object} errorPayload
// @Router   /api/services [get]
// @Router   /api/packages [get]
// @Router   /api/projects [get]
// @Router   /api/reviews [get]
// @Router   /api/gallery [get]
// @Router   /api/stats [get]
// @Router   /api/faqs [get]
func (h *ContentHandler[T, I]) ListPublic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, ok := parseListParams(c)
		if !ok {
			return nil
		}
		res, err := h.svc.ListPublic(c.UserContext(), params)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetBySlug returns a visible row by its slug.
//
// @Summary  Get published content by slug
// @Tags     public
// @Produce  json
// @Param    slug path string true "slug"
// @Success  200 {object} map[string]any
// @Failure  404 {object} errorPayload
// @Router   /api/services/{slug} [get]
// @Router   /api/projects/{slug} [get]
func (h *ContentHandler[T, I]) GetBySlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.svc.GetBySlug(c.UserContext(), c.Params("slug"))
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// List lists every live row for the backoffice.
//
// @Summary  List content
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
// @Router   /api/admin/services [get]
// @Router   /api/admin/packages [get]
// @Router   /api/admin/projects [get]
// @Router   /api/admin/reviews [get]
// @Router   /api/admin/gallery [get]
// @Router   /api/admin/stats [get]
// @Router   /api/admin/faqs [get]
// @Router   /api/admin/seo [get]
func (h *ContentHandler[T, I]) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, ok := parseListParams(c)
		if !ok {
			return nil
		}
		res, err := h.svc.List(c.UserContext(), params)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Get returns one row by id, hidden rows included.
//
// @Summary  Get content
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/services/{id} [get]
// @Router   /api/admin/packages/{id} [get]
// @Router   /api/admin/projects/{id} [get]
// @Router   /api/admin/reviews/{id} [get]
// @Router   /api/admin/gallery/{id} [get]
// @Router   /api/admin/stats/{id} [get]
// @Router   /api/admin/faqs/{id} [get]
// @Router   /api/admin/seo/{id} [get]
func (h *ContentHandler[T, I]) Get() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return nil
		}
		out, err := h.svc.Get(c.UserContext(), id)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// Create validates the body and inserts a new row.
//
// @Summary  Create content
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Success  201 {object} map[string]any
// @Failure  400 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/services [post]
// @Router   /api/admin/packages [post]
// @Router   /api/admin/projects [post]
// @Router   /api/admin/reviews [post]
// @Router   /api/admin/gallery [post]
// @Router   /api/admin/stats [post]
// @Router   /api/admin/faqs [post]
// @Router   /api/admin/seo [post]
func (h *ContentHandler[T, I]) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in I
		if !bindJSON(c, &in) {
			return nil
		}
		out, err := h.svc.Create(c.UserContext(), in)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// Update replaces every editable field of a row.
//
// @Summary  Replace content
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "id"
// @Success  200 {object} map[string]any
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  409 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/services/{id} [put]
// @Router   /api/admin/packages/{id} [put]
// @Router   /api/admin/projects/{id} [put]
// @Router   /api/admin/reviews/{id} [put]
// @Router   /api/admin/gallery/{id} [put]
// @Router   /api/admin/stats/{id} [put]
// @Router   /api/admin/faqs/{id} [put]
// @Router   /api/admin/seo/{id} [put]
func (h *ContentHandler[T, I]) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return nil
		}
		var in I
		if !bindJSON(c, &in) {
			return nil
		}
		out, err := h.svc.Update(c.UserContext(), id, in)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// Delete soft-deletes a row.
//
// @Summary  Delete content
// @Tags     admin
// @Security BearerAuth
// @Param    id path string true "id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/services/{id} [delete]
// @Router   /api/admin/packages/{id} [delete]
// @Router   /api/admin/projects/{id} [delete]
// @Router   /api/admin/reviews/{id} [delete]
// @Router   /api/admin/gallery/{id} [delete]
// @Router   /api/admin/stats/{id} [delete]
// @Router   /api/admin/faqs/{id} [delete]
// @Router   /api/admin/seo/{id} [delete]
func (h *ContentHandler[T, I]) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return nil
		}
		if err := h.svc.Delete(c.UserContext(), id); err != nil {
			return handleServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Reorder takes {"ids": [...]} in the new display order.
//
// @Summary  Reorder content
// @Tags     admin
// @Accept   json
// @Security BearerAuth
// @Param    body body service.ReorderInput true "ids in display order"
// @Success  204
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/services/reorder [put]
// @Router   /api/admin/packages/reorder [put]
// @Router   /api/admin/projects/reorder [put]
// @Router   /api/admin/reviews/reorder [put]
// @Router   /api/admin/gallery/reorder [put]
// @Router   /api/admin/stats/reorder [put]
// @Router   /api/admin/faqs/reorder [put]
func (h *ContentHandler[T, I]) Reorder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ReorderInput
		if !bindJSON(c, &in) {
			return nil
		}
		if err := h.svc.Reorder(c.UserContext(), in.IDs); err != nil {
			return handleServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// mount registers the admin CRUD routes on r. Reorder is registered before /:id.
func (h *ContentHandler[T, I]) mount(r fiber.Router, sortable bool) {
	r.Get("/", h.List())
	r.Post("/", h.Create())
	if sortable {
		r.Put("/reorder", h.Reorder())
	}
	r.Get("/:id", h.Get())
	r.Put("/:id", h.Update())
	r.Delete("/:id", h.Delete())
}
