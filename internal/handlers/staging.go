package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"casa-certa-portal/internal/middleware"
	"casa-certa-portal/internal/staging"
)

// StagingHandler serves the admin image-staging endpoints. Everything
// here operates on the session's in-memory buffer; nothing touches
// storage until the property save runs.
type StagingHandler struct {
	staged *staging.Store
}

// NewStagingHandler creates a new staging handler.
func NewStagingHandler(staged *staging.Store) *StagingHandler {
	return &StagingHandler{staged: staged}
}

func (h *StagingHandler) buffer(c *gin.Context) *staging.Buffer {
	return h.staged.Buffer(c.GetString(middleware.ContextKeySessionID))
}

// AddImages handles POST /admin/api/staging/images with a multipart
// form carrying one or more files under "images". Files are accepted
// in form order with no de-duplication; size limits apply at save
// time, not here.
func (h *StagingHandler) AddImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no images in request"})
		return
	}

	files := make([]staging.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
			return
		}

		files = append(files, staging.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	added := h.buffer(c).Add(files...)
	c.JSON(http.StatusCreated, gin.H{"images": added})
}

// RemoveImage handles DELETE /admin/api/staging/images/:id.
func (h *StagingHandler) RemoveImage(c *gin.Context) {
	if !h.buffer(c).Remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "staged image not found"})
		return
	}
	h.List(c)
}

// Clear handles POST /admin/api/staging/clear.
func (h *StagingHandler) Clear(c *gin.Context) {
	h.buffer(c).Clear()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

type setCoverRequest struct {
	Index int `json:"index"`
}

// SetCover handles POST /admin/api/staging/cover. The index refers to
// the current buffer order; an out-of-range value is resolved at save
// time by falling back to the first image.
func (h *StagingHandler) SetCover(c *gin.Context) {
	var req setCoverRequest
	if err := bindStrictJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.buffer(c).SetCover(req.Index)
	h.List(c)
}

// Preview handles GET /admin/api/staging/images/:id/preview, streaming
// the staged bytes back so the editor can render thumbnails.
func (h *StagingHandler) Preview(c *gin.Context) {
	img, ok := h.buffer(c).Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "staged image not found"})
		return
	}

	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, img.Data)
}

// List handles GET /admin/api/staging, returning the buffer order and
// the current cover index.
func (h *StagingHandler) List(c *gin.Context) {
	buffer := h.buffer(c)
	c.JSON(http.StatusOK, gin.H{
		"images":      buffer.Images(),
		"cover_index": buffer.Cover(),
	})
}
