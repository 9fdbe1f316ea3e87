package server

import (
	"io"

	"github.com/neointeraction/hrms-backend-sub001/internal/models"
	"github.com/neointeraction/hrms-backend-sub001/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadMedia handles POST /api/upload-media
func (s *Server) UploadMedia(c *fiber.Ctx) error {
	who := currentActor(c)

	file, err := c.FormFile("file")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Unable to read uploaded file"))
	}

	uploaded, err := s.mediaService.Upload(c.UserContext(), service.UploadMediaInput{
		TenantID:    who.TenantID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(uploaded)
}
