package handler

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"sitecms/internal/service"
)

// Subscribe adds an address to the newsletter. Re-subscribing is idempotent.
//
// @Summary  Subscribe to the newsletter
// @Tags     public
// @Accept   json
// @Produce  json
// @Param    body body service.SubscribeInput true "email"
// @Success  201 {object} map[string]string
// @Failure  400 {object} errorPayload
// @Router   /api/newsletter/subscribe [post]
func Subscribe(svc service.NewsletterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.SubscribeInput
		if !bindJSON(c, &in) {
			return nil
		}
		out, err := svc.Subscribe(c.UserContext(), in)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"email": out.Email, "status": out.Status})
	}
}

// Unsubscribe takes the token from the JSON body or, for links, the token query parameter.
//
// @Summary  Unsubscribe from the newsletter
// @Tags     public
// @Accept   json
// @Produce  json
// @Param    token query string false "unsubscribe token"
// @Success  200 {object} map[string]string
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /api/newsletter/unsubscribe [post]
func Unsubscribe(svc service.NewsletterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.UnsubscribeInput
		if len(c.Body()) > 0 && !bindJSON(c, &in) {
			return nil
		}
		if in.Token == "" {
			in.Token = c.Query("token")
		}
		if err := svc.Unsubscribe(c.UserContext(), in); err != nil {
			return handleServiceError(c, err)
		}
		return c.JSON(fiber.Map{"status": "unsubscribed"})
	}
}

// ListSubscribers lists subscriptions, optionally filtered by ?status=.
//
// @Summary  List subscribers
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    limit query int false "page size"
// @Param    offset query int false "rows to skip"
// @Param    q query string false "search text"
// @Param    status query string false "subscribed or unsubscribed"
// @Success  200 {object} map[string]any
// @Failure  400 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/newsletter [get]
func ListSubscribers(svc service.NewsletterService) fiber.Handler {
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

// DeleteSubscriber handles DELETE /api/admin/newsletter/{id}.
//
// @Summary  Delete a subscriber
// @Tags     admin
// @Security BearerAuth
// @Param    id path string true "id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/newsletter/{id} [delete]
func DeleteSubscriber(svc service.NewsletterService) fiber.Handler {
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

// ExportSubscribers downloads subscriptions as CSV, optionally filtered by ?status=.
//
// @Summary  Export subscribers
// @Tags     admin
// @Produce  text/csv
// @Security BearerAuth
// @Param    status query string false "subscribed or unsubscribed"
// @Success  200 {string} string
// @Failure  401 {object} errorPayload
// @Failure  403 {object} errorPayload
// @Router   /api/admin/newsletter/export [get]
func ExportSubscribers(svc service.NewsletterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Buffered so a failed query still produces a JSON error instead of a truncated file.
		var buf bytes.Buffer
		if err := svc.Export(c.UserContext(), c.Query("status"), &buf); err != nil {
			return handleServiceError(c, err)
		}

		name := fmt.Sprintf("newsletter-%s.csv", time.Now().UTC().Format("20060102"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Attachment(name)
		return c.Send(buf.Bytes())
	}
}
