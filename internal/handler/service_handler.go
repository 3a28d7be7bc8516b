package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
)

type serviceRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Features    []string `json:"features"`
	Category    *string  `json:"category"`
	Featured    *bool    `json:"featured"`
	Icon        *string  `json:"icon"`
	ImageURL    *string  `json:"image"`
	ImageKey    *string  `json:"imageKey"`
	SortOrder   *int     `json:"order"`
	Visible     *bool    `json:"isVisible"`
}

// ListAdminServices 返回后台管理用的服务项列表（含隐藏条目）。
func (a *API) ListAdminServices(c *gin.Context) {
	services, err := a.services.List(true, service.ProjectFilter{})
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取服务列表失败")
		return
	}

	items := make([]gin.H, 0, len(services))
	for _, item := range services {
		items = append(items, adminServicePayload(item))
	}
	c.JSON(http.StatusOK, gin.H{"services": items})
}

// GetAdminService 返回单个服务项。
func (a *API) GetAdminService(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的服务ID")
		return
	}

	item, err := a.services.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": adminServicePayload(*item)})
}

// CreateService 创建新服务项。
func (a *API) CreateService(c *gin.Context) {
	var payload serviceRequest
	if !bindJSON(c, &payload, "请填写完整的服务信息") {
		return
	}

	item, err := a.services.Create(payload.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "已新增服务",
		"service": adminServicePayload(*item),
	})
}

// UpdateService 部分更新服务项。
func (a *API) UpdateService(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的服务ID")
		return
	}

	var payload serviceRequest
	if !bindJSON(c, &payload, "请填写完整的服务信息") {
		return
	}

	item, err := a.services.Update(id, payload.toInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "服务已更新",
		"service": adminServicePayload(*item),
	})
}

// DeleteService 删除指定服务项。
func (a *API) DeleteService(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的服务ID")
		return
	}

	if err := a.services.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "服务已删除"})
}

func (r serviceRequest) toInput() service.ServiceInput {
	return service.ServiceInput{
		Title:       r.Title,
		Description: r.Description,
		Features:    r.Features,
		Category:    r.Category,
		Featured:    r.Featured,
		Icon:        r.Icon,
		ImageURL:    r.ImageURL,
		ImageKey:    r.ImageKey,
		SortOrder:   r.SortOrder,
		Visible:     r.Visible,
	}
}

func adminServicePayload(item db.Service) gin.H {
	payload := publicServicePayload(item)
	payload["imageKey"] = item.ImageKey
	payload["isVisible"] = item.Visible
	return payload
}

func publicServicePayload(item db.Service) gin.H {
	features := []string(item.Features)
	if features == nil {
		features = []string{}
	}
	return gin.H{
		"id":          item.ID,
		"title":       item.Title,
		"description": item.Description,
		"features":    features,
		"category":    item.Category,
		"featured":    item.Featured,
		"icon":        item.Icon,
		"image":       item.ImageURL,
		"order":       item.SortOrder,
	}
}

func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		respondError(c, http.StatusNotFound, "服务不存在")
	case errors.Is(err, service.ErrServiceInvalidInput):
		respondValidationError(c, "请检查必填项", extractMissingFields(err))
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
