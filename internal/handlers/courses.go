package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ynastt/course-admin/internal/domain"
)

func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.services.CourseService.ListCourses(c.Request.Context())
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, courses)
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req domain.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	course, err := h.services.CourseService.CreateCourse(c.Request.Context(), req)
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, course)
}

func (h *Handler) GetCourse(c *gin.Context) {
	course, err := h.services.CourseService.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, course)
}

func (h *Handler) AddVideo(c *gin.Context) {
	var req domain.Video
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	video, err := h.services.CourseService.AddVideo(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, domain.AddVideoResponse{Video: *video})
}
