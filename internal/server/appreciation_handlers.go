package server

import (
	"github.com/neointeraction/hrms-backend-sub001/internal/models"
	"github.com/neointeraction/hrms-backend-sub001/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAppreciation handles POST /api/appreciations
func (s *Server) CreateAppreciation(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)

	var req struct {
		RecipientID uint   `json:"recipient_id"`
		BadgeID     uint   `json:"badge_id"`
		Message     string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}
	if req.RecipientID == 0 || req.BadgeID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Fields 'recipient_id' and 'badge_id' are required"))
	}

	appreciation, err := s.appreciationService.Create(ctx, service.CreateAppreciationInput{
		UserID:      who.UserID,
		TenantID:    who.TenantID,
		RecipientID: req.RecipientID,
		BadgeID:     req.BadgeID,
		Message:     req.Message,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(appreciation)
}

// ListAppreciations handles GET /api/appreciations?recipient_id=&page=&limit=
func (s *Server) ListAppreciations(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	page := parsePagination(c, 20)

	var recipientID *uint
	if raw := c.QueryInt("recipient_id", 0); raw > 0 {
		id := uint(raw)
		recipientID = &id
	}

	appreciations, err := s.appreciationService.List(ctx, service.ListAppreciationsInput{
		TenantID:    who.TenantID,
		RecipientID: recipientID,
		Limit:       page.Limit,
		Offset:      (page.Page - 1) * page.Limit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(appreciations)
}

// ListBadges handles GET /api/badges
func (s *Server) ListBadges(c *fiber.Ctx) error {
	badges, err := s.appreciationService.ListBadges(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(badges)
}
