package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
)

type pageRequest struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type sectionRequest struct {
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Subtitle  string         `json:"subtitle"`
	Content   map[string]any `json:"content"`
	SortOrder *int           `json:"order"`
	Visible   *bool          `json:"isVisible"`
}

type homeContentRequest struct {
	Sections []sectionRequest `json:"sections"`
}

// ListAdminPages 返回全部页面。
func (a *API) ListAdminPages(c *gin.Context) {
	pages, err := a.pages.ListPages()
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取页面列表失败")
		return
	}

	items := make([]gin.H, 0, len(pages))
	for _, page := range pages {
		items = append(items, gin.H{"id": page.ID, "slug": page.Slug, "title": page.Title})
	}
	c.JSON(http.StatusOK, gin.H{"pages": items})
}

// GetAdminPage 返回页面及其全部区块（含隐藏）。
func (a *API) GetAdminPage(c *gin.Context) {
	page, err := a.pages.GetBySlug(c.Param("slug"), true)
	if err != nil {
		handlePageError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagePayload(*page))
}

// CreatePage 创建新页面。
func (a *API) CreatePage(c *gin.Context) {
	var payload pageRequest
	if !bindJSON(c, &payload, "请填写页面信息") {
		return
	}

	page, err := a.pages.CreatePage(payload.Slug, payload.Title)
	if err != nil {
		handlePageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "已新增页面",
		"page":    gin.H{"id": page.ID, "slug": page.Slug, "title": page.Title},
	})
}

// DeletePage 删除页面并级联删除其区块。
func (a *API) DeletePage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的页面ID")
		return
	}

	if err := a.pages.DeletePage(id); err != nil {
		handlePageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "页面已删除"})
}

// SaveHomeContent 批量 upsert 首页区块，按 (pageId, name) 幂等。
func (a *API) SaveHomeContent(c *gin.Context) {
	var payload homeContentRequest
	if !bindJSON(c, &payload, "请提交正确的区块数据") {
		return
	}

	inputs := make([]service.SectionInput, 0, len(payload.Sections))
	for _, section := range payload.Sections {
		inputs = append(inputs, service.SectionInput{
			Name:      section.Name,
			Type:      section.Type,
			Title:     section.Title,
			Subtitle:  section.Subtitle,
			Content:   section.Content,
			SortOrder: section.SortOrder,
			Visible:   section.Visible,
		})
	}

	page, err := a.pages.UpsertSections("home", inputs)
	if err != nil {
		handlePageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "首页内容已保存",
		"page":    pagePayload(*page),
	})
}

func pagePayload(page db.Page) gin.H {
	sections := make([]gin.H, 0, len(page.Sections))
	for _, section := range page.Sections {
		sections = append(sections, sectionPayload(section))
	}
	return gin.H{
		"page":     gin.H{"id": page.ID, "slug": page.Slug, "title": page.Title},
		"sections": sections,
	}
}

// sectionPayload 对已知区块类型输出归一化后的内容结构，
// 未知类型原样透传，前端自行解释。
func sectionPayload(section db.PageSection) gin.H {
	var content any
	if decoded, ok := section.DecodeContent(); ok {
		content = decoded
	} else {
		raw := json.RawMessage(section.Content)
		if len(raw) == 0 {
			raw = json.RawMessage("{}")
		}
		content = raw
	}
	return gin.H{
		"id":        section.ID,
		"name":      section.Name,
		"type":      section.Type,
		"title":     section.Title,
		"subtitle":  section.Subtitle,
		"content":   content,
		"order":     section.SortOrder,
		"isVisible": section.Visible,
	}
}

func handlePageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPageNotFound):
		respondError(c, http.StatusNotFound, "页面不存在")
	case errors.Is(err, service.ErrPageInvalidInput):
		respondValidationError(c, "请检查区块字段", nil)
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
