package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/neointeraction/hrms-backend-sub001/internal/config"
	"github.com/neointeraction/hrms-backend-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// objectStoreStub is a stub for storage.ObjectStore.
type objectStoreStub struct {
	putFn func(context.Context, string, io.Reader, string) (string, error)
}

func (s *objectStoreStub) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	return s.putFn(ctx, key, body, contentType)
}

func noopObjectStore() *objectStoreStub {
	return &objectStoreStub{
		putFn: func(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
			return "https://media.example.com/" + key, nil
		},
	}
}

func testMediaConfig() *config.Config {
	return &config.Config{MediaMaxUploadMB: 1}
}

func TestMediaService_Upload_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewMediaService(noopObjectStore(), testMediaConfig())

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Upload(ctx, UploadMediaInput{TenantID: 1, Filename: "a.png", ContentType: "image/png"})
		assertInvalidArgument(t, err)
	})

	t.Run("file too large", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Upload(ctx, UploadMediaInput{
			TenantID: 1, Filename: "a.png", ContentType: "image/png",
			Content: make([]byte, 2*1024*1024),
		})
		assertInvalidArgument(t, err)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Upload(ctx, UploadMediaInput{
			TenantID: 1, Filename: "a.exe", ContentType: "application/octet-stream",
			Content: []byte{1, 2, 3},
		})
		assertInvalidArgument(t, err)
	})

	t.Run("extension mismatch", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Upload(ctx, UploadMediaInput{
			TenantID: 1, Filename: "a.png", ContentType: "image/jpeg",
			Content: []byte{1, 2, 3},
		})
		assertInvalidArgument(t, err)
	})

	t.Run("jpeg extension alias accepted", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Upload(ctx, UploadMediaInput{
			TenantID: 1, Filename: "photo.jpeg", ContentType: "image/jpeg",
			Content: []byte{1, 2, 3},
		})
		assert.NoError(t, err)
	})
}

func TestMediaService_Upload_KeyLayout(t *testing.T) {
	t.Parallel()

	var gotKey, gotContentType string
	store := &objectStoreStub{
		putFn: func(_ context.Context, key string, _ io.Reader, contentType string) (string, error) {
			gotKey = key
			gotContentType = contentType
			return "https://media.example.com/" + key, nil
		},
	}

	svc := NewMediaService(store, testMediaConfig())
	uploaded, err := svc.Upload(context.Background(), UploadMediaInput{
		TenantID: 42, Filename: "team.png", ContentType: "image/png",
		Content: []byte("pretend-png"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(gotKey, "tenants/42/media/"), "key %q should be tenant-scoped", gotKey)
	assert.True(t, strings.HasSuffix(gotKey, ".png"))
	assert.Equal(t, "image/png", gotContentType)
	assert.NotEmpty(t, uploaded.ObjectID)
	assert.Contains(t, uploaded.URL, gotKey)
}

func TestMediaService_Upload_StoreFailure(t *testing.T) {
	t.Parallel()

	store := &objectStoreStub{
		putFn: func(_ context.Context, _ string, _ io.Reader, _ string) (string, error) {
			return "", errors.New("s3 unavailable")
		},
	}

	svc := NewMediaService(store, testMediaConfig())
	_, err := svc.Upload(context.Background(), UploadMediaInput{
		TenantID: 1, Filename: "a.png", ContentType: "image/png",
		Content: []byte{1},
	})
	assertAppErrorCode(t, err, models.CodeInternal)
}
