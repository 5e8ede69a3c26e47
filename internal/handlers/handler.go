package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ynastt/course-admin/internal/domain"
	"github.com/ynastt/course-admin/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *slog.Logger
}

func NewHandler(services *service.Services, logger *slog.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = 32 << 20

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}

	router.Use(cors.New(config))

	api := router.Group("/api")

	fields := api.Group("/admin/custom-fields")
	{
		fields.GET("", h.ListCustomFields)
		fields.POST("", h.CreateCustomField)
		fields.PATCH("/:id", h.UpdateCustomField)
		fields.DELETE("/:id", h.DeleteCustomField)
	}

	teams := api.Group("/teams")
	{
		teams.GET("", h.ListTeams)
		teams.POST("", h.CreateTeam)
	}

	courses := api.Group("/courses")
	{
		courses.GET("", h.ListCourses)
		courses.POST("", h.CreateCourse)
		courses.GET("/:id", h.GetCourse)
		courses.POST("/:id/videos", h.AddVideo)
	}

	api.POST("/uploads/videos", h.UploadVideo)

	products := api.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
	}

	return router
}

func (h *Handler) errorResponse(c *gin.Context, status int, code, message string) {
	h.logger.Error("handler error", "code", code, "message", message, "status", status,
		"method", c.Request.Method, "path", c.FullPath())
	c.JSON(status, domain.ErrorResponse{
		Error: domain.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func (h *Handler) successResponse(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// domainError writes the response for errors every endpoint may return.
func (h *Handler) domainError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		h.errorResponse(c, http.StatusBadRequest, "INVALID_INPUT", ve.Message)
	case errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrFieldNotFound),
		errors.Is(err, domain.ErrTeamNotFound):
		h.errorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrTeamExists):
		h.errorResponse(c, http.StatusConflict, "TEAM_EXISTS", err.Error())
	case errors.Is(err, domain.ErrFieldExists):
		h.errorResponse(c, http.StatusConflict, "FIELD_EXISTS", err.Error())
	case errors.Is(err, domain.ErrVideoExists):
		h.errorResponse(c, http.StatusConflict, "VIDEO_EXISTS", err.Error())
	case errors.Is(err, domain.ErrUnsupportedMedia):
		h.errorResponse(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA", err.Error())
	default:
		h.logger.Error("unexpected error", slog.Any("error", err))
		h.errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
