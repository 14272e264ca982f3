package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitecms/internal/model"
	repoMocks "sitecms/internal/repository/mocks"
	"sitecms/internal/storage"
	storeMocks "sitecms/internal/storage/mocks"
)

// pngBytes is a PNG signature followed by padding; enough for content sniffing.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), bytes.Repeat([]byte{0}, 64)...)

func pngUpload() Upload {
	return Upload{Reader: bytes.NewReader(pngBytes), Filename: "photo.PNG", Size: int64(len(pngBytes))}
}

func TestMediaService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		up         func() Upload
		setupMocks func(mStore *storeMocks.MockStorage)
		wantErr    error
		wantErrMsg string
		wantFields map[string]string
	}{
		{
			name: "happy path",
			up:   pngUpload,
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "uploads/") && strings.HasSuffix(key, ".png")
				}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "image/png" && opt.Metadata["original-filename"] == "photo.PNG"
				})).Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
					b, _ := io.ReadAll(r)
					assert.Equal(t, pngBytes, b)
					return storage.ObjectInfo{Key: key, Size: opt.Size}
				}, nil)
				mStore.On("URL", ctx, mock.Anything).Return("https://cdn.example.com/uploads/x.png", nil)
			},
		},
		{
			name:       "validation error - nil reader",
			up:         func() Upload { return Upload{} },
			setupMocks: func(*storeMocks.MockStorage) {},
			wantErr:    ErrReaderNil,
		},
		{
			name: "not an image",
			up: func() Upload {
				return Upload{Reader: strings.NewReader("<script>alert(1)</script>"), Filename: "x.png", Size: 25}
			},
			setupMocks: func(*storeMocks.MockStorage) {},
			wantFields: map[string]string{"file": "image"},
		},
		{
			name: "too large",
			up: func() Upload {
				u := pngUpload()
				u.Size = 1 << 30
				return u
			},
			setupMocks: func(*storeMocks.MockStorage) {},
			wantFields: map[string]string{"file": "max_size"},
		},
		{
			name: "storage error",
			up:   pngUpload,
			setupMocks: func(mStore *storeMocks.MockStorage) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, a, r := testDeps()
			allowHooks(a, r)
			mStore := new(storeMocks.MockStorage)
			tt.setupMocks(mStore)

			svc := NewMediaService(mStore, 1<<20, deps)
			obj, err := svc.Upload(ctx, "uploads", tt.up())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.ErrorContains(t, err, tt.wantErrMsg)
			case tt.wantFields != nil:
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantFields, ve.Fields)
			default:
				require.NoError(t, err)
				assert.Equal(t, "https://cdn.example.com/uploads/x.png", obj.URL)
				assert.Equal(t, "image/png", obj.ContentType)
			}
			mStore.AssertExpectations(t)
		})
	}
}

func TestGalleryService_Upload(t *testing.T) {
	ctx := context.Background()
	putOK := func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
		return storage.ObjectInfo{Key: key}
	}

	tests := []struct {
		name       string
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockStore[model.GalleryItem])
		wantErrMsg string
	}{
		{
			name: "happy path",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockStore[model.GalleryItem]) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(putOK, nil)
				mStore.On("URL", ctx, mock.Anything).Return("https://cdn/x.png", nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(g *model.GalleryItem) bool {
					return g.Title == "Office" && g.IsPublished && strings.HasPrefix(g.StorageKey, "gallery/")
				})).Return(&model.GalleryItem{Base: model.Base{ID: testID}}, nil)
			},
		},
		{
			name: "repository error with successful rollback",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockStore[model.GalleryItem]) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(putOK, nil)
				mStore.On("URL", ctx, mock.Anything).Return("https://cdn/x.png", nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "gallery/")
				})).Return(nil)
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name: "repository error with failed rollback",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockStore[model.GalleryItem]) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(putOK, nil)
				mStore.On("URL", ctx, mock.Anything).Return("https://cdn/x.png", nil)
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, a, r := testDeps()
			allowHooks(a, r)
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockStore[model.GalleryItem])
			tt.setupMocks(mStore, mRepo)

			svc := NewGalleryService(mRepo, NewMediaService(mStore, 0, deps), deps)
			item, err := svc.Upload(ctx, pngUpload(), GalleryUploadInput{Title: "Office"})

			if tt.wantErrMsg != "" {
				assert.ErrorContains(t, err, tt.wantErrMsg)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testID, item.ID)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestGalleryInput_ApplyClearsStorageKeyOnNewImage(t *testing.T) {
	item := &model.GalleryItem{ImageURL: "https://cdn/a.png", StorageKey: "gallery/a.png"}

	GalleryInput{Title: "a", ImageURL: "https://cdn/a.png"}.Apply(item)
	assert.Equal(t, "gallery/a.png", item.StorageKey)

	GalleryInput{Title: "a", ImageURL: "https://cdn/b.png"}.Apply(item)
	assert.Empty(t, item.StorageKey)
}
