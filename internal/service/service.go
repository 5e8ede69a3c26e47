package service

import (
	"github.com/ynastt/course-admin/internal/service/course"
	"github.com/ynastt/course-admin/internal/service/customfield"
	"github.com/ynastt/course-admin/internal/service/product"
	"github.com/ynastt/course-admin/internal/service/team"
	"github.com/ynastt/course-admin/internal/service/upload"
)

type Services struct {
	TeamService        *team.TeamService
	CourseService      *course.CourseService
	CustomFieldService *customfield.CustomFieldService
	ProductService     *product.ProductService

	// UploadService is nil when object storage is not configured.
	UploadService *upload.UploadService
}
