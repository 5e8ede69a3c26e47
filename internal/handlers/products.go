package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ynastt/course-admin/internal/domain"
)

func (h *Handler) CreateProduct(c *gin.Context) {
	var req domain.Product
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	product, err := h.services.ProductService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, product)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.services.ProductService.ListProducts(c.Request.Context(), c.Query("team"))
	if err != nil {
		h.domainError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, products)
}
