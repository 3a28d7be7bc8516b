package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/devfolio/internal/service"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// CacheControl 为公开读取接口附加短 TTL 缓存头。
func (a *API) CacheControl() gin.HandlerFunc {
	value := fmt.Sprintf("public, max-age=%d", a.cacheMaxAge)
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}

// ListPublicSkills 返回可见技能的有序集合。
// 集合类资源读取失败时返回 500 与空集合，调用方应视作可重试而非确认为空。
func (a *API) ListPublicSkills(c *gin.Context) {
	skills, err := a.skills.List(false, service.SkillFilter{
		Category: c.Query("category"),
		Limit:    parseLimitQuery(c),
	})
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取技能失败", "skills": []gin.H{}})
		return
	}

	items := make([]gin.H, 0, len(skills))
	for _, skill := range skills {
		items = append(items, publicSkillPayload(skill))
	}
	c.JSON(http.StatusOK, gin.H{"skills": items})
}

// ListPublicSkillsGrouped 返回按分类分组后的技能视图。
// 分组是在接口排序之上的第二层派生，纯函数且幂等。
func (a *API) ListPublicSkillsGrouped(c *gin.Context) {
	skills, err := a.skills.List(false, service.SkillFilter{})
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取技能失败", "groups": []gin.H{}})
		return
	}

	groups := service.GroupByCategory(skills)
	payload := make([]gin.H, 0, len(groups))
	for _, group := range groups {
		items := make([]gin.H, 0, len(group.Skills))
		for _, skill := range group.Skills {
			items = append(items, publicSkillPayload(skill))
		}
		payload = append(payload, gin.H{"category": group.Category, "skills": items})
	}
	c.JSON(http.StatusOK, gin.H{"groups": payload})
}

// ListPublicProjects 返回可见项目，支持 limit/featured/category 组合过滤。
func (a *API) ListPublicProjects(c *gin.Context) {
	projects, err := a.projects.List(false, service.ProjectFilter{
		Featured: parseBoolQuery(c, "featured"),
		Category: c.Query("category"),
		Limit:    parseLimitQuery(c),
	})
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取项目失败", "projects": []gin.H{}})
		return
	}

	items := make([]gin.H, 0, len(projects))
	for _, project := range projects {
		items = append(items, publicProjectPayload(project))
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}

// ListPublicServices 返回可见服务项。
func (a *API) ListPublicServices(c *gin.Context) {
	services, err := a.services.List(false, service.ProjectFilter{
		Featured: parseBoolQuery(c, "featured"),
		Category: c.Query("category"),
		Limit:    parseLimitQuery(c),
	})
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取服务失败", "services": []gin.H{}})
		return
	}

	items := make([]gin.H, 0, len(services))
	for _, item := range services {
		items = append(items, publicServicePayload(item))
	}
	c.JSON(http.StatusOK, gin.H{"services": items})
}

// ListPublicCertificates 返回可见证书。
func (a *API) ListPublicCertificates(c *gin.Context) {
	certificates, err := a.certificates.List(false, parseLimitQuery(c))
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取证书失败", "certificates": []gin.H{}})
		return
	}

	items := make([]gin.H, 0, len(certificates))
	for _, item := range certificates {
		items = append(items, publicCertificatePayload(item))
	}
	c.JSON(http.StatusOK, gin.H{"certificates": items})
}

// ListPublicEducation 返回可见教育经历。
func (a *API) ListPublicEducation(c *gin.Context) {
	records, err := a.education.List(false)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取教育经历失败", "education": []gin.H{}})
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, item := range records {
		items = append(items, publicEducationPayload(item))
	}
	c.JSON(http.StatusOK, gin.H{"education": items})
}

// GetHomeSections 返回首页及其有序可见区块。
// 页面尚未配置时返回空区块列表，保持 200。
func (a *API) GetHomeSections(c *gin.Context) {
	a.getPublicPage(c, "home", true)
}

// GetPublicPage 返回任意页面及其有序可见区块。
func (a *API) GetPublicPage(c *gin.Context) {
	a.getPublicPage(c, c.Param("slug"), false)
}

func (a *API) getPublicPage(c *gin.Context, slug string, emptyOnMissing bool) {
	page, err := a.pages.GetBySlug(slug, false)
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			if emptyOnMissing {
				c.JSON(http.StatusOK, gin.H{
					"page":     gin.H{"slug": slug, "title": ""},
					"sections": []gin.H{},
				})
				return
			}
			respondError(c, http.StatusNotFound, "页面不存在")
			return
		}
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取页面失败", "sections": []gin.H{}})
		return
	}

	c.JSON(http.StatusOK, pagePayload(*page))
}

// Healthz 检查数据库连通性。
func (a *API) Healthz(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// renderMarkdown 将 markdown 渲染为净化后的 HTML，失败时返回空串。
func renderMarkdown(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes()))
}
