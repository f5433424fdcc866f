package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/webwhiz/hrms-backend/internal/pkg/storage"
	"golang.org/x/image/draw"
)

// maxImageEdge bounds the longer side of stored task images.
const maxImageEdge = 1920

type FileService interface {
	// UploadLeaveAttachment stores a leave document under leave/{userID}.
	UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// UploadTaskAttachment stores a task file under tasks/{projectID}.
	// Oversized JPEG and PNG images are downscaled before storing.
	UploadTaskAttachment(ctx context.Context, projectID string, file io.Reader, filename string, contentType string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadLeaveAttachment uploads leave request attachment
func (s *fileServiceImpl) UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	// Generate unique filename with timestamp
	newFilename := fmt.Sprintf("%s-%d%s", uuid.NewString(), time.Now().Unix(), ext)
	key := path.Join("leave", userID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, key, contentTypeFor(ext))
	if err != nil {
		return "", fmt.Errorf("failed to upload leave attachment: %w", err)
	}

	return uploadedPath, nil
}

// UploadTaskAttachment uploads a task attachment
func (s *fileServiceImpl) UploadTaskAttachment(ctx context.Context, projectID string, file io.Reader, filename string, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if contentType == "image/jpeg" || contentType == "image/png" {
		buffer, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read image: %w", err)
		}
		shrunk, ok, err := downscaleImage(buffer, maxImageEdge)
		if err != nil {
			// Keep the original bytes when the image cannot be decoded.
			slog.Warn("task image not downscaled", "filename", filename, "error", err)
		}
		if ok {
			buffer, ext, contentType = shrunk, ".jpg", "image/jpeg"
		}
		file = bytes.NewReader(buffer)
	}

	newFilename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	key := path.Join("tasks", projectID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload task attachment: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL returns the public URL of path, or an empty string when it
// cannot be resolved.
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string) string {
	url, err := s.storage.GetURL(ctx, path, 0)
	if err != nil {
		slog.Warn("failed to resolve file url", "path", path, "error", err)
		return ""
	}
	return url
}

// ==================== HELPER FUNCTIONS ====================

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// downscaleImage re-encodes the image as JPEG with its longer side bounded
// by maxEdge. ok is false when the image already fits.
func downscaleImage(buffer []byte, maxEdge int) ([]byte, bool, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(buffer))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image config: %w", err)
	}
	if cfg.Width <= maxEdge && cfg.Height <= maxEdge {
		return nil, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image: %w", err)
	}

	width, height := fitWithin(cfg.Width, cfg.Height, maxEdge)
	resized := resizeImage(img, width, height)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, false, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), true, nil
}

// fitWithin scales width and height so the longer side equals maxEdge.
func fitWithin(width, height, maxEdge int) (int, int) {
	if width >= height {
		return maxEdge, max(1, height*maxEdge/width)
	}
	return max(1, width*maxEdge/height), maxEdge
}

// resizeImage resizes an image to the specified dimensions using high-quality interpolation
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// Use CatmullRom for high-quality downscaling
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
