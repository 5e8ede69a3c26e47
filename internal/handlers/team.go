package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ynastt/course-admin/internal/domain"
)

func (h *Handler) CreateTeam(c *gin.Context) {
	var req domain.Team
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	team, err := h.services.TeamService.CreateTeam(c.Request.Context(), req)
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, team)
}

func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.services.TeamService.ListTeams(c.Request.Context())
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, teams)
}
