package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
)

type educationRequest struct {
	Institution  *string                `json:"institution"`
	Degree       *string                `json:"degree"`
	Field        *string                `json:"field"`
	StartDate    *string                `json:"startDate"`
	EndDate      service.OptionalString `json:"endDate"`
	Current      *bool                  `json:"isCurrent"`
	Achievements []string               `json:"achievements"`
	SortOrder    *int                   `json:"order"`
	Visible      *bool                  `json:"isVisible"`
}

// ListAdminEducation 返回后台管理用的教育经历列表（含隐藏条目）。
func (a *API) ListAdminEducation(c *gin.Context) {
	records, err := a.education.List(true)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取教育经历失败")
		return
	}

	items := make([]gin.H, 0, len(records))
	for _, item := range records {
		items = append(items, adminEducationPayload(item))
	}
	c.JSON(http.StatusOK, gin.H{"education": items})
}

// GetAdminEducation 返回单条教育经历。
func (a *API) GetAdminEducation(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的教育经历ID")
		return
	}

	item, err := a.education.Get(id)
	if err != nil {
		handleEducationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"education": adminEducationPayload(*item)})
}

// CreateEducation 创建新教育经历。
func (a *API) CreateEducation(c *gin.Context) {
	var payload educationRequest
	if !bindJSON(c, &payload, "请填写完整的教育经历") {
		return
	}

	item, err := a.education.Create(payload.toInput())
	if err != nil {
		handleEducationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "已新增教育经历",
		"education": adminEducationPayload(*item),
	})
}

// UpdateEducation 部分更新教育经历。
func (a *API) UpdateEducation(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的教育经历ID")
		return
	}

	var payload educationRequest
	if !bindJSON(c, &payload, "请填写完整的教育经历") {
		return
	}

	item, err := a.education.Update(id, payload.toInput())
	if err != nil {
		handleEducationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "教育经历已更新",
		"education": adminEducationPayload(*item),
	})
}

// DeleteEducation 删除指定教育经历。
func (a *API) DeleteEducation(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的教育经历ID")
		return
	}

	if err := a.education.Delete(id); err != nil {
		handleEducationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "教育经历已删除"})
}

func (r educationRequest) toInput() service.EducationInput {
	return service.EducationInput{
		Institution:  r.Institution,
		Degree:       r.Degree,
		Field:        r.Field,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Current:      r.Current,
		Achievements: r.Achievements,
		SortOrder:    r.SortOrder,
		Visible:      r.Visible,
	}
}

func adminEducationPayload(item db.Education) gin.H {
	payload := publicEducationPayload(item)
	payload["isVisible"] = item.Visible
	return payload
}

func publicEducationPayload(item db.Education) gin.H {
	achievements := []string(item.Achievements)
	if achievements == nil {
		achievements = []string{}
	}
	return gin.H{
		"id":           item.ID,
		"institution":  item.Institution,
		"degree":       item.Degree,
		"field":        item.Field,
		"startDate":    item.StartDate,
		"endDate":      item.EndDate,
		"isCurrent":    item.Current,
		"achievements": achievements,
		"order":        item.SortOrder,
	}
}

func handleEducationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEducationNotFound):
		respondError(c, http.StatusNotFound, "教育经历不存在")
	case errors.Is(err, service.ErrEducationInvalidInput):
		respondValidationError(c, "请检查必填项", extractMissingFields(err))
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
