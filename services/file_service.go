package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"listener-api/models"
	"listener-api/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultPresignExpiry = time.Hour

	maxAudioSize = 50 << 20
	maxImageSize = 5 << 20
)

type FileKind string

const (
	FileAudio FileKind = "audio"
	FileImage FileKind = "image"
)

type fileRule struct {
	prefix       string
	maxSize      int64
	contentTypes map[string]struct{}
	extensions   map[string]struct{}
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

var fileRules = map[FileKind]fileRule{
	FileAudio: {
		prefix:       "audio",
		maxSize:      maxAudioSize,
		contentTypes: set("audio/mpeg", "audio/wav", "audio/ogg", "audio/flac", "audio/x-m4a", "audio/aac"),
		extensions:   set(".mp3", ".wav", ".ogg", ".flac", ".m4a", ".aac"),
	},
	FileImage: {
		prefix:       "images",
		maxSize:      maxImageSize,
		contentTypes: set("image/jpeg", "image/png", "image/gif", "image/webp"),
		extensions:   set(".jpg", ".jpeg", ".png", ".gif", ".webp"),
	},
}

type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type FileService interface {
	Upload(ctx context.Context, kind FileKind, upload Upload) (*models.FileUploadResponse, error)
	PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

type fileService struct {
	fileRepo repositories.FileRepository
	logger   *zap.Logger
}

func NewFileService(fileRepo repositories.FileRepository, logger *zap.Logger) FileService {
	return &fileService{fileRepo: fileRepo, logger: logger}
}

// Validate checks an upload against the rules for kind and returns the
// normalized lower-case extension.
func (k FileKind) Validate(upload Upload) (string, error) {
	rule, ok := fileRules[k]
	if !ok {
		return "", models.ErrorBadRequest{Message: fmt.Sprintf("unknown file kind %q", k)}
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.SplitN(upload.ContentType, ";", 2)[0]))
	if _, ok := rule.contentTypes[contentType]; !ok {
		return "", models.ErrorBadRequest{Message: fmt.Sprintf("Invalid file type %q for %s upload", upload.ContentType, k)}
	}

	ext := strings.ToLower(path.Ext(upload.Filename))
	if _, ok := rule.extensions[ext]; !ok {
		return "", models.ErrorBadRequest{Message: fmt.Sprintf("Invalid file extension %q for %s upload", ext, k)}
	}

	if upload.Size <= 0 {
		return "", models.ErrorBadRequest{Message: "File is empty"}
	}
	if upload.Size > rule.maxSize {
		return "", models.ErrorBadRequest{Message: fmt.Sprintf("File too large, maximum size is %d MB", rule.maxSize>>20)}
	}
	return ext, nil
}

func (s *fileService) Upload(ctx context.Context, kind FileKind, upload Upload) (*models.FileUploadResponse, error) {
	ext, err := kind.Validate(upload)
	if err != nil {
		return nil, err
	}

	key := fileRules[kind].prefix + "/" + uuid.NewString() + ext
	if err := s.fileRepo.Upload(ctx, key, upload.Body, upload.Size, upload.ContentType); err != nil {
		return nil, models.ErrorInternalServer{Message: "Failed to upload file", Err: err}
	}

	url, err := s.fileRepo.PresignedURL(ctx, key, DefaultPresignExpiry)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "Failed to generate file URL", Err: err}
	}

	s.logger.Info("file uploaded", zap.String("key", key), zap.Int64("size", upload.Size))
	return &models.FileUploadResponse{FilePath: key, URL: url}, nil
}

func (s *fileService) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return "", models.ErrorBadRequest{Message: "Invalid file path"}
	}
	url, err := s.fileRepo.PresignedURL(ctx, key, expires)
	if err != nil {
		return "", models.ErrorInternalServer{Message: "Failed to generate file URL", Err: err}
	}
	return url, nil
}
