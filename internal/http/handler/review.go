package handler

import (
	"github.com/gofiber/fiber/v2"

	"sitecms/internal/model"
	"sitecms/internal/service"
)

type ReviewHandler struct {
	*ContentHandler[model.Review, service.ReviewInput]
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{ContentHandler: NewContentHandler[model.Review, service.ReviewInput](svc), svc: svc}
}

// Submit accepts a visitor review. It stays hidden until published from the backoffice.
//
// @Summary  Submit a review
// @Tags     public
// @Accept   json
// @Produce  json
// @Param    body body service.ReviewSubmission true "review"
// @Success  201 {object} model.Review
// @Failure  400 {object} errorPayload
// @Router   /api/reviews [post]
func (h *ReviewHandler) Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ReviewSubmission
		if !bindJSON(c, &in) {
			return nil
		}
		out, err := h.svc.Submit(c.UserContext(), in)
		if err != nil {
			return handleServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}
