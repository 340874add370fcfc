package api

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (string, error)
}

// ImageHandler accepts multipart image uploads for the wizard's basic-info
// step.
type ImageHandler struct {
	uploader Uploader
}

// NewImageHandler creates a new ImageHandler instance
func NewImageHandler(uploader Uploader) *ImageHandler {
	return &ImageHandler{uploader: uploader}
}

// RegisterRoutes wires the image endpoint onto the router group.
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/images", h.UploadImage)
}

// UploadImage reads the "image" form file and returns {url}.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadImage(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
