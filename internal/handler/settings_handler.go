package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/internal/service"
)

type settingsRequest struct {
	Colors    map[string]any `json:"colors"`
	Fonts     map[string]any `json:"fonts"`
	Social    map[string]any `json:"social"`
	Contact   map[string]any `json:"contact"`
	Analytics map[string]any `json:"analytics"`
}

// GetAdminSettings 返回全部站点设置，含仅后台可见的 analytics 分组。
func (a *API) GetAdminSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取站点设置失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings 保存站点设置，只覆盖请求中出现的分组。
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsRequest
	if !bindJSON(c, &payload, "请提交正确的设置数据") {
		return
	}

	settings, err := a.settings.UpdateSettings(service.SiteSettingsInput{
		Colors:    payload.Colors,
		Fonts:     payload.Fonts,
		Social:    payload.Social,
		Contact:   payload.Contact,
		Analytics: payload.Analytics,
	})
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "保存站点设置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "站点设置已保存",
		"settings": settings,
	})
}

// GetPublicSettings 返回对外安全的设置子集，不含 analytics。
func (a *API) GetPublicSettings(c *gin.Context) {
	settings, err := a.settings.GetSettings()
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取站点设置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": gin.H{
			"colors":  settings.Colors,
			"fonts":   settings.Fonts,
			"social":  settings.Social,
			"contact": settings.Contact,
		},
	})
}
