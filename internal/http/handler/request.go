package handler

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sitecms/internal/service"
)

// reserved query keys that are never treated as filters.
var reservedQuery = map[string]bool{"limit": true, "offset": true, "q": true}

// parseListParams reads limit, offset and q. Every other query parameter is
// passed as a filter; services ignore filters they do not support.
func parseListParams(c *fiber.Ctx) (service.ListParams, bool) {
	var p service.ListParams

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(service.DefaultLimit)))
	if err != nil || limit < 0 {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		return p, false
	}
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		return p, false
	}

	p.Limit = limit
	p.Offset = offset
	p.Search = c.Query("q")
	for k, v := range c.Queries() {
		if reservedQuery[k] || v == "" {
			continue
		}
		if p.Filters == nil {
			p.Filters = map[string]string{}
		}
		p.Filters[k] = v
	}
	return p, true
}

// paramID returns the UUID route parameter name, or writes INVALID_ID.
func paramID(c *fiber.Ctx, name string) (string, bool) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		return "", false
	}
	return id, true
}

// bindJSON decodes the request body into v, or writes INVALID_BODY.
func bindJSON(c *fiber.Ctx, v any) bool {
	if err := c.BodyParser(v); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		return false
	}
	return true
}

// formUpload opens the multipart file field "file".
// The caller must close the returned closer.
func formUpload(c *fiber.Ctx) (service.Upload, io.Closer, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		return service.Upload{}, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		return service.Upload{}, nil, false
	}
	return service.Upload{Reader: f, Filename: fh.Filename, Size: fh.Size}, f, true
}
