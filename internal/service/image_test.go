package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plateup/backend/config"
)

func TestUploadImageRejectsOversize(t *testing.T) {
	svc := NewImageService(&config.S3Config{BucketName: "test"}, 10)

	_, err := svc.UploadImage(context.Background(), "big.jpg", strings.NewReader(strings.Repeat("x", 11)))
	assert.ErrorContains(t, err, "10 byte limit")
}

func TestUploadImageRejectsEmpty(t *testing.T) {
	svc := NewImageService(&config.S3Config{BucketName: "test"}, 1024)

	_, err := svc.UploadImage(context.Background(), "empty.jpg", strings.NewReader(""))
	assert.ErrorContains(t, err, "empty upload")
}

func TestUploadImageRejectsNonImageContent(t *testing.T) {
	svc := NewImageService(&config.S3Config{BucketName: "test"}, 1024)

	// Content sniffing decides, not the filename.
	_, err := svc.UploadImage(context.Background(), "fake.png", strings.NewReader("just some text"))
	assert.ErrorContains(t, err, "unsupported content type")
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Equal(t, "", extensionFor("application/pdf"))
}
