package handler

import (
	"gorm.io/gorm"

	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/mailer"
	"github.com/devfolio/internal/service"
	"github.com/devfolio/internal/storage"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db           *gorm.DB
	profiles     *service.ProfileService
	skills       *service.SkillService
	projects     *service.ProjectService
	services     *service.ServiceService
	certificates *service.CertificateService
	education    *service.EducationService
	pages        *service.PageService
	messages     *service.MessageService
	settings     *service.SiteSettingService
	dashboard    *service.DashboardService
	uploads      *storage.Client
	admin        config.AdminConfig
	cacheMaxAge  int
}

// NewAPI constructs a handler set with shared services.
// uploads 可为 nil，此时上传接口返回 503。
func NewAPI(gdb *gorm.DB, cfg *config.Config, uploads *storage.Client, notifier mailer.Notifier) *API {
	return &API{
		db:           gdb,
		profiles:     service.NewProfileService(gdb),
		skills:       service.NewSkillService(gdb),
		projects:     service.NewProjectService(gdb),
		services:     service.NewServiceService(gdb),
		certificates: service.NewCertificateService(gdb),
		education:    service.NewEducationService(gdb),
		pages:        service.NewPageService(gdb),
		messages:     service.NewMessageService(gdb, notifier),
		settings:     service.NewSiteSettingService(gdb),
		dashboard:    service.NewDashboardService(gdb),
		uploads:      uploads,
		admin:        cfg.Admin,
		cacheMaxAge:  cfg.API.PublicCacheMaxAge,
	}
}

// DB exposes the underlying gorm instance for health checks.
func (a *API) DB() *gorm.DB {
	return a.db
}
