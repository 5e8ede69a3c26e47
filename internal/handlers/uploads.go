package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ynastt/course-admin/internal/domain"
)

func (h *Handler) UploadVideo(c *gin.Context) {
	if h.services.UploadService == nil {
		h.errorResponse(c, http.StatusServiceUnavailable, "UPLOADS_DISABLED", domain.ErrUploadsDisabled.Error())
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.services.UploadService.UploadVideo(c.Request.Context(), header.Filename, header.Size, file)
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, result)
}
