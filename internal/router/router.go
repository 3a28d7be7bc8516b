package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devfolio/internal/config"
	"github.com/devfolio/internal/handler"
	"github.com/devfolio/internal/metrics"
)

// SetupRouter 配置 Gin 引擎和全部路由。
func SetupRouter(cfg *config.Config, api *handler.API) *gin.Engine {
	gin.SetMode(cfg.API.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())
	r.Use(metrics.GinMiddleware())

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(cfg.Session.Name, store))

	r.GET("/healthz", api.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 公开读取接口
	content := r.Group("/content")
	content.Use(api.CacheControl())
	{
		content.GET("/profile", api.GetPublicProfile)
		content.GET("/skills", api.ListPublicSkills)
		content.GET("/skills/grouped", api.ListPublicSkillsGrouped)
		content.GET("/projects", api.ListPublicProjects)
		content.GET("/services", api.ListPublicServices)
		content.GET("/certificates", api.ListPublicCertificates)
		content.GET("/education", api.ListPublicEducation)
		content.GET("/home-sections", api.GetHomeSections)
		content.GET("/pages/:slug", api.GetPublicPage)
		content.GET("/settings", api.GetPublicSettings)
	}

	r.POST("/contact", api.SubmitContact)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)
		admin.GET("/session", api.Session)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard/stats", api.DashboardStats)

			auth.GET("/profile", api.GetAdminProfile)
			auth.PUT("/profile", api.SaveProfile)

			auth.GET("/skills", api.ListAdminSkills)
			auth.GET("/skills/:id", api.GetAdminSkill)
			auth.POST("/skills", api.CreateSkill)
			auth.PUT("/skills/:id", api.UpdateSkill)
			auth.DELETE("/skills/:id", api.DeleteSkill)

			auth.GET("/projects", api.ListAdminProjects)
			auth.GET("/projects/:id", api.GetAdminProject)
			auth.POST("/projects", api.CreateProject)
			auth.PUT("/projects/:id", api.UpdateProject)
			auth.DELETE("/projects/:id", api.DeleteProject)

			auth.GET("/services", api.ListAdminServices)
			auth.GET("/services/:id", api.GetAdminService)
			auth.POST("/services", api.CreateService)
			auth.PUT("/services/:id", api.UpdateService)
			auth.DELETE("/services/:id", api.DeleteService)

			auth.GET("/certificates", api.ListAdminCertificates)
			auth.GET("/certificates/:id", api.GetAdminCertificate)
			auth.POST("/certificates", api.CreateCertificate)
			auth.PUT("/certificates/:id", api.UpdateCertificate)
			auth.DELETE("/certificates/:id", api.DeleteCertificate)

			auth.GET("/education", api.ListAdminEducation)
			auth.GET("/education/:id", api.GetAdminEducation)
			auth.POST("/education", api.CreateEducation)
			auth.PUT("/education/:id", api.UpdateEducation)
			auth.DELETE("/education/:id", api.DeleteEducation)

			auth.GET("/pages", api.ListAdminPages)
			auth.GET("/pages/:slug", api.GetAdminPage)
			auth.POST("/pages", api.CreatePage)
			auth.DELETE("/pages/:id", api.DeletePage)
			auth.PUT("/home-content", api.SaveHomeContent)

			auth.GET("/messages", api.ListAdminMessages)
			auth.PUT("/messages/:id/status", api.UpdateMessageStatus)
			auth.PUT("/messages/:id/archive", api.ArchiveMessage)
			auth.DELETE("/messages/:id", api.DeleteMessage)

			auth.GET("/settings", api.GetAdminSettings)
			auth.PUT("/settings", api.UpdateSettings)

			auth.POST("/uploads", api.UploadImage)
		}
	}

	return r
}

// requestLogger 输出结构化访问日志。
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
			slog.Error("request", attrs...)
			return
		}
		slog.Info("request", attrs...)
	}
}
