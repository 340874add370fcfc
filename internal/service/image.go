package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/plateup/backend/config"
)

// ImageService uploads recipe images to S3 and hands back the public URL
// that gets stored on the recipe.
type ImageService struct {
	s3Client *s3.Client
	bucket   string
	maxBytes int64
}

// NewImageService creates a new ImageService instance
func NewImageService(s3cfg *config.S3Config, maxBytes int64) *ImageService {
	return &ImageService{
		s3Client: s3cfg.Client,
		bucket:   s3cfg.BucketName,
		maxBytes: maxBytes,
	}
}

// UploadImage stores the file under recipe-images/ with a random name and
// returns its URL. Non-image content and oversized files are rejected.
func (s *ImageService) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("image exceeds the %d byte limit", s.maxBytes)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("empty upload")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = extensionFor(contentType)
	}
	key := fmt.Sprintf("recipe-images/%s%s", uuid.New().String(), ext)

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
