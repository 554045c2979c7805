package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"listener-api/helper"
	"listener-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryFiles struct {
	objects   map[string]string
	uploadErr error
}

func (m *memoryFiles) Upload(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = string(data)
	return nil
}

func (m *memoryFiles) PresignedURL(_ context.Context, key string, expires time.Duration) (string, error) {
	return "https://bucket.test/" + key + "?ttl=" + expires.String(), nil
}

func TestFileKindValidate(t *testing.T) {
	tests := []struct {
		name    string
		kind    FileKind
		upload  Upload
		wantExt string
		wantErr bool
	}{
		{"mp3", FileAudio, Upload{Filename: "a.MP3", ContentType: "audio/mpeg", Size: 10}, ".mp3", false},
		{"flac with params", FileAudio, Upload{Filename: "a.flac", ContentType: "audio/flac; charset=binary", Size: 10}, ".flac", false},
		{"audio as image", FileImage, Upload{Filename: "a.mp3", ContentType: "audio/mpeg", Size: 10}, "", true},
		{"bad extension", FileImage, Upload{Filename: "a.bmp", ContentType: "image/png", Size: 10}, "", true},
		{"empty", FileImage, Upload{Filename: "a.png", ContentType: "image/png", Size: 0}, "", true},
		{"image too large", FileImage, Upload{Filename: "a.png", ContentType: "image/png", Size: maxImageSize + 1}, "", true},
		{"audio at limit", FileAudio, Upload{Filename: "a.wav", ContentType: "audio/wav", Size: maxAudioSize}, ".wav", false},
		{"audio too large", FileAudio, Upload{Filename: "a.wav", ContentType: "audio/wav", Size: maxAudioSize + 1}, "", true},
		{"unknown kind", FileKind("video"), Upload{Filename: "a.mp4", ContentType: "video/mp4", Size: 10}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := tt.kind.Validate(tt.upload)
			if tt.wantErr {
				var badRequest models.ErrorBadRequest
				assert.ErrorAs(t, err, &badRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestFileServiceUpload(t *testing.T) {
	files := &memoryFiles{objects: map[string]string{}}
	svc := NewFileService(files, zap.NewNop())

	out, err := svc.Upload(context.Background(), FileImage, Upload{
		Filename:    "cover.JPG",
		ContentType: "image/jpeg",
		Size:        4,
		Body:        strings.NewReader("jpeg"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.FilePath, "images/"))
	assert.True(t, strings.HasSuffix(out.FilePath, ".jpg"))
	assert.Equal(t, "jpeg", files.objects[out.FilePath])
	assert.Equal(t, "https://bucket.test/"+out.FilePath+"?ttl=1h0m0s", out.URL)
}

func TestFileServiceUploadStorageFailure(t *testing.T) {
	files := &memoryFiles{objects: map[string]string{}, uploadErr: errors.New("bucket unreachable")}
	svc := NewFileService(files, zap.NewNop())

	_, err := svc.Upload(context.Background(), FileAudio, Upload{
		Filename: "a.mp3", ContentType: "audio/mpeg", Size: 3, Body: strings.NewReader("mp3"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, helper.NewHTTPHelper(nil).GetStatusCode(err))
	assert.ErrorIs(t, err, files.uploadErr)
}

func TestFileServicePresignedURL(t *testing.T) {
	svc := NewFileService(&memoryFiles{objects: map[string]string{}}, zap.NewNop())

	url, err := svc.PresignedURL(context.Background(), "/audio/x.mp3", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.test/audio/x.mp3?ttl=1m0s", url)

	for _, key := range []string{"", "/", "audio/../secret", "../etc/passwd"} {
		_, err := svc.PresignedURL(context.Background(), key, time.Minute)
		var badRequest models.ErrorBadRequest
		assert.ErrorAs(t, err, &badRequest, key)
	}
}
