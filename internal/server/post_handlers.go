package server

import (
	"time"

	"github.com/neointeraction/hrms-backend-sub001/internal/models"
	"github.com/neointeraction/hrms-backend-sub001/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListFeed handles GET /api/feed
func (s *Server) ListFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	page := parsePagination(c, service.DefaultFeedLimit)

	posts, pages, err := s.feedService.ListFeed(ctx, service.ListFeedInput{
		TenantID: who.TenantID,
		Type:     c.Query("type"),
		Scope:    c.Query("scope"),
		Page:     page.Page,
		PageSize: page.Limit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":       posts,
		"page":        page.Page,
		"total_pages": pages,
	})
}

// CheckNewActivity handles GET /api/feed/check-new?since=<RFC3339>
func (s *Server) CheckNewActivity(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)

	raw := c.Query("since")
	if raw == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Query parameter 'since' is required"))
	}
	since, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Query parameter 'since' must be RFC 3339"))
	}

	count, latest, err := s.feedService.CheckNewActivity(ctx, who.TenantID, since)
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := fiber.Map{"new_count": count}
	if latest != nil {
		resp["latest"] = latest
	}
	return c.JSON(resp)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)

	var req struct {
		Type    string                   `json:"type"`
		Scope   string                   `json:"scope"`
		Content string                   `json:"content"`
		Media   []string                 `json:"media"`
		Poll    *service.CreatePollInput `json:"poll"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	post, err := s.feedService.CreatePost(ctx, service.CreatePostInput{
		UserID:   who.UserID,
		TenantID: who.TenantID,
		Type:     req.Type,
		Scope:    req.Scope,
		Content:  req.Content,
		Media:    req.Media,
		Poll:     req.Poll,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	post, err := s.feedService.GetPost(ctx, who.TenantID, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	post, err := s.feedService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:   who.UserID,
		TenantID: who.TenantID,
		PostID:   postID,
		Content:  req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	if err := s.feedService.DeletePost(ctx, service.DeletePostInput{
		UserID:   who.UserID,
		TenantID: who.TenantID,
		PostID:   postID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// PinPost handles PUT /api/posts/:id/pin
func (s *Server) PinPost(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req struct {
		Pinned bool `json:"pinned"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	post, err := s.feedService.SetPinned(ctx, service.PinPostInput{
		UserID:   who.UserID,
		TenantID: who.TenantID,
		PostID:   postID,
		Pinned:   req.Pinned,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// ReactToPost handles POST /api/posts/:id/react
func (s *Server) ReactToPost(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	postID, err := s.parseID(c, "id", "post ID")
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

	post, err := s.feedService.ToggleReaction(ctx, service.ToggleReactionInput{
		UserID:   who.UserID,
		TenantID: who.TenantID,
		PostID:   postID,
		Type:     req.Type,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// VotePoll handles POST /api/posts/:id/vote
func (s *Server) VotePoll(c *fiber.Ctx) error {
	ctx := c.Context()
	who := currentActor(c)
	postID, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req struct {
		OptionIndex *int `json:"option_index"`
	}
	if err := c.BodyParser(&req); err != nil || req.OptionIndex == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Field 'option_index' is required"))
	}

	post, err := s.feedService.VotePoll(ctx, service.VotePollInput{
		UserID:      who.UserID,
		TenantID:    who.TenantID,
		PostID:      postID,
		OptionIndex: *req.OptionIndex,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}
