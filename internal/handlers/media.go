package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/api/internal/middleware"
	"portfolio/api/internal/service"
)

type mediaResponse struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

func (h HandlerSet) UploadMedia(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "A file field is required")
		return
	}
	defer file.Close()

	user, _ := middleware.CurrentUser(c)

	result, err := h.media.Upload(c.Request.Context(), service.UploadInput{
		File:       file,
		Header:     header,
		UploadedBy: user.ID,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedMediaType) {
			respondError(c, http.StatusBadRequest, "Only JPEG, PNG, GIF and WebP images are accepted")
			return
		}
		if errors.Is(err, service.ErrEmptyUpload) {
			respondError(c, http.StatusBadRequest, "Uploaded file is empty")
			return
		}
		h.internalError(c, err, "media upload failed")
		return
	}

	respondDataMessage(c, http.StatusCreated, mediaResponse{
		ID:          result.Asset.ID,
		URL:         result.URL,
		ContentType: result.Asset.ContentType,
		SizeBytes:   result.Asset.SizeBytes,
	}, "File uploaded successfully")
}
