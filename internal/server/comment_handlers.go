package server

import (
	"github.com/neointeraction/hrms-backend-sub001/internal/models"
	"github.com/neointeraction/hrms-backend-sub001/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListComments handles GET /api/posts/:id/comments
func (s *Server) ListComments(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(ctx, who.TenantID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comments)
}

// AddComment handles POST /api/posts/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	comment, err := s.commentService.AddComment(ctx, service.AddCommentInput{
		UserID:   who.UserID,
		TenantID: who.TenantID,
		PostID:   postID,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// ReactToComment handles POST /api/comments/:id/react
func (s *Server) ReactToComment(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	commentID, err := s.parseID(c, "id", "comment ID")
	if err != nil {
		return nil
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	comment, err := s.commentService.ToggleReaction(ctx, service.ToggleCommentReactionInput{
		UserID:    who.UserID,
		TenantID:  who.TenantID,
		CommentID: commentID,
		Type:      req.Type,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(comment)
}
