package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
)

type projectRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	ShortDesc   *string                `json:"shortDesc"`
	TechStack   []string               `json:"techStack"`
	Category    *string                `json:"category"`
	Status      *string                `json:"status"`
	Featured    *bool                  `json:"featured"`
	GithubURL   *string                `json:"githubUrl"`
	LiveURL     *string                `json:"liveUrl"`
	CoverURL    *string                `json:"coverUrl"`
	CoverKey    *string                `json:"coverKey"`
	StartDate   *string                `json:"startDate"`
	EndDate     service.OptionalString `json:"endDate"`
	SortOrder   *int                   `json:"order"`
	Visible     *bool                  `json:"isVisible"`
}

// ListAdminProjects 返回后台管理用的项目列表（含隐藏条目）。
func (a *API) ListAdminProjects(c *gin.Context) {
	projects, err := a.projects.List(true, service.ProjectFilter{})
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取项目列表失败")
		return
	}

	items := make([]gin.H, 0, len(projects))
	for _, project := range projects {
		items = append(items, adminProjectPayload(project))
	}
	c.JSON(http.StatusOK, gin.H{"projects": items})
}

// GetAdminProject 返回单个项目。
func (a *API) GetAdminProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	project, err := a.projects.Get(id)
	if err != nil {
		handleProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": adminProjectPayload(*project)})
}

// CreateProject 创建新项目。
func (a *API) CreateProject(c *gin.Context) {
	var payload projectRequest
	if !bindJSON(c, &payload, "请填写完整的项目信息") {
		return
	}

	project, err := a.projects.Create(payload.toInput())
	if err != nil {
		handleProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "已新增项目",
		"project": adminProjectPayload(*project),
	})
}

// UpdateProject 部分更新项目。
func (a *API) UpdateProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	var payload projectRequest
	if !bindJSON(c, &payload, "请填写完整的项目信息") {
		return
	}

	project, err := a.projects.Update(id, payload.toInput())
	if err != nil {
		handleProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "项目已更新",
		"project": adminProjectPayload(*project),
	})
}

// DeleteProject 删除指定项目。
func (a *API) DeleteProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的项目ID")
		return
	}

	if err := a.projects.Delete(id); err != nil {
		handleProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "项目已删除"})
}

func (r projectRequest) toInput() service.ProjectInput {
	return service.ProjectInput{
		Title:       r.Title,
		Description: r.Description,
		ShortDesc:   r.ShortDesc,
		TechStack:   r.TechStack,
		Category:    r.Category,
		Status:      r.Status,
		Featured:    r.Featured,
		GithubURL:   r.GithubURL,
		LiveURL:     r.LiveURL,
		CoverURL:    r.CoverURL,
		CoverKey:    r.CoverKey,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		SortOrder:   r.SortOrder,
		Visible:     r.Visible,
	}
}

func adminProjectPayload(project db.Project) gin.H {
	payload := publicProjectPayload(project)
	payload["coverKey"] = project.CoverKey
	payload["isVisible"] = project.Visible
	return payload
}

func publicProjectPayload(project db.Project) gin.H {
	techStack := []string(project.TechStack)
	if techStack == nil {
		techStack = []string{}
	}
	return gin.H{
		"id":          project.ID,
		"title":       project.Title,
		"description": project.Description,
		"shortDesc":   project.ShortDesc,
		"techStack":   techStack,
		"category":    project.Category,
		"status":      project.Status,
		"featured":    project.Featured,
		"githubUrl":   project.GithubURL,
		"liveUrl":     project.LiveURL,
		"coverUrl":    project.CoverURL,
		"startDate":   project.StartDate,
		"endDate":     project.EndDate,
		"order":       project.SortOrder,
	}
}

func handleProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		respondError(c, http.StatusNotFound, "项目不存在")
	case errors.Is(err, service.ErrProjectInvalidInput):
		respondValidationError(c, "请检查必填项", extractMissingFields(err))
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
