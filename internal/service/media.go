package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"sitecms/internal/model"
	"sitecms/internal/storage"
)

// sniffLen is how many leading bytes are inspected to detect the real content type.
const sniffLen = 3072

// allowedImageTypes are the upload formats browsers render inline safely.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/avif": true,
}

// Upload is a file received from a multipart form.
type Upload struct {
	Reader   io.Reader
	Filename string
	Size     int64
}

// StoredObject is an uploaded file.
type StoredObject struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// MediaService stores uploaded images in object storage.
type MediaService interface {
	// Upload streams an image to object storage under prefix/<uuid><ext>.
	// The content type is detected from the bytes, not taken from the client.
	Upload(ctx context.Context, prefix string, up Upload) (*StoredObject, error)

	// Remove deletes an uploaded object.
	Remove(ctx context.Context, key string) error
}

type mediaService struct {
	store    storage.Storage
	maxBytes int64
	hooks    changeHooks
}

// NewMediaService constructs a new MediaService. maxBytes <= 0 disables the size check.
func NewMediaService(store storage.Storage, maxBytes int64, deps Deps) MediaService {
	return &mediaService{store: store, maxBytes: maxBytes, hooks: deps.hooks("media")}
}

func (s *mediaService) Upload(ctx context.Context, prefix string, up Upload) (*StoredObject, error) {
	if up.Reader == nil {
		return nil, ErrReaderNil
	}
	if up.Size <= 0 {
		return nil, invalidField("file", "required")
	}
	if s.maxBytes > 0 && up.Size > s.maxBytes {
		return nil, invalidField("file", "max_size")
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(up.Reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	mt := mimetype.Detect(head)
	contentType := strings.SplitN(mt.String(), ";", 2)[0]
	if !allowedImageTypes[contentType] {
		return nil, invalidField("file", "image")
	}

	ext := mt.Extension()
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(up.Filename))
	}
	key := path.Join(prefix, uuid.New().String()+ext)

	obj, err := s.store.Put(ctx, key, io.MultiReader(bytes.NewReader(head), up.Reader), storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filepath.Base(up.Filename),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.URL(ctx, obj.Key)
	if err != nil {
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			return nil, fmt.Errorf("resolve url failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("resolve url: %w", err)
	}

	s.hooks.changed(ctx, model.AuditUpload, "media", obj.Key, map[string]any{"filename": up.Filename, "size": up.Size})
	return &StoredObject{Key: obj.Key, URL: url, ContentType: contentType, Size: up.Size}, nil
}

func (s *mediaService) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return nil
}

// rollbackUpload removes an object whose database row could not be written.
func rollbackUpload(ctx context.Context, media MediaService, key string, cause error) error {
	if delErr := media.Remove(ctx, key); delErr != nil {
		return fmt.Errorf("db save failed: %v; rollback delete failed: %v", cause, delErr)
	}
	return fmt.Errorf("db save failed: %w", cause)
}
