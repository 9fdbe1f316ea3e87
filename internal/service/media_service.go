package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/neointeraction/hrms-backend-sub001/internal/config"
	"github.com/neointeraction/hrms-backend-sub001/internal/models"
	"github.com/neointeraction/hrms-backend-sub001/internal/storage"

	"github.com/google/uuid"
)

// allowedMediaTypes whitelists what clients may attach to posts.
var allowedMediaTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"video/mp4":  ".mp4",
}

// MediaService stores uploaded media in the object store and hands back
// opaque URLs. Post drafts reference these URLs; nothing else in the system
// interprets them.
type MediaService struct {
	store          storage.ObjectStore
	maxUploadBytes int64
}

type UploadMediaInput struct {
	TenantID    uint
	Filename    string
	ContentType string
	Content     []byte
}

// MediaUpload is the result handed back to the client.
type MediaUpload struct {
	URL      string `json:"url"`
	ObjectID string `json:"object_id"`
}

// NewMediaService creates a new media service.
func NewMediaService(store storage.ObjectStore, cfg *config.Config) *MediaService {
	maxMB := 10
	if cfg != nil && cfg.MediaMaxUploadMB > 0 {
		maxMB = cfg.MediaMaxUploadMB
	}
	return &MediaService{
		store:          store,
		maxUploadBytes: int64(maxMB) * 1024 * 1024,
	}
}

func (s *MediaService) Upload(ctx context.Context, in UploadMediaInput) (*MediaUpload, error) {
	if len(in.Content) == 0 {
		return nil, models.NewInvalidArgumentError("Uploaded file is empty")
	}
	if int64(len(in.Content)) > s.maxUploadBytes {
		return nil, models.NewInvalidArgumentError(
			fmt.Sprintf("File too large (max %d MB)", s.maxUploadBytes/(1024*1024)))
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := allowedMediaTypes[contentType]
	if !ok {
		return nil, models.NewInvalidArgumentError("Unsupported media type")
	}
	if byName := strings.ToLower(filepath.Ext(in.Filename)); byName != "" && byName != ext && !(ext == ".jpg" && byName == ".jpeg") {
		return nil, models.NewInvalidArgumentError("File extension does not match content type")
	}

	objectID := uuid.New().String()
	key := fmt.Sprintf("tenants/%d/media/%s%s", in.TenantID, objectID, ext)

	url, err := s.store.Put(ctx, key, bytes.NewReader(in.Content), contentType)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &MediaUpload{URL: url, ObjectID: objectID}, nil
}
