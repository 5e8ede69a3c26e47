package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ynastt/course-admin/internal/domain"
)

func (h *Handler) ListCustomFields(c *gin.Context) {
	filter := domain.CustomFieldFilter{TeamID: c.Query("team")}
	if activeParam := c.Query("active"); activeParam != "" {
		active, err := strconv.ParseBool(activeParam)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "active must be a boolean")
			return
		}
		filter.ActiveOnly = active
	}

	fields, err := h.services.CustomFieldService.ListFields(c.Request.Context(), filter)
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, fields)
}

func (h *Handler) CreateCustomField(c *gin.Context) {
	var req domain.SaveCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	field, err := h.services.CustomFieldService.CreateField(c.Request.Context(), req.Field)
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, field)
}

func (h *Handler) UpdateCustomField(c *gin.Context) {
	var req domain.SaveCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	field, err := h.services.CustomFieldService.UpdateField(c.Request.Context(), c.Param("id"), req.Field)
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, field)
}

func (h *Handler) DeleteCustomField(c *gin.Context) {
	if err := h.services.CustomFieldService.DeleteField(c.Request.Context(), c.Param("id")); err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{"success": true})
}
