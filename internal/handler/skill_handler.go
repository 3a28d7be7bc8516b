package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
)

type skillRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Level       *int    `json:"level"`
	Icon        *string `json:"icon"`
	ImageURL    *string `json:"imageUrl"`
	ImageKey    *string `json:"imageKey"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"order"`
	Visible     *bool   `json:"isVisible"`
}

// ListAdminSkills 返回后台管理用的技能列表（含隐藏条目）。
func (a *API) ListAdminSkills(c *gin.Context) {
	skills, err := a.skills.List(true, service.SkillFilter{})
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取技能列表失败")
		return
	}

	items := make([]gin.H, 0, len(skills))
	for _, skill := range skills {
		items = append(items, adminSkillPayload(skill))
	}
	c.JSON(http.StatusOK, gin.H{"skills": items})
}

// GetAdminSkill 返回单个技能。
func (a *API) GetAdminSkill(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的技能ID")
		return
	}

	skill, err := a.skills.Get(id)
	if err != nil {
		handleSkillError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skill": adminSkillPayload(*skill)})
}

// CreateSkill 创建新技能。
func (a *API) CreateSkill(c *gin.Context) {
	var payload skillRequest
	if !bindJSON(c, &payload, "请填写完整的技能信息") {
		return
	}

	skill, err := a.skills.Create(payload.toInput())
	if err != nil {
		handleSkillError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "已新增技能",
		"skill":   adminSkillPayload(*skill),
	})
}

// UpdateSkill 部分更新技能。
func (a *API) UpdateSkill(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的技能ID")
		return
	}

	var payload skillRequest
	if !bindJSON(c, &payload, "请填写完整的技能信息") {
		return
	}

	skill, err := a.skills.Update(id, payload.toInput())
	if err != nil {
		handleSkillError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "技能已更新",
		"skill":   adminSkillPayload(*skill),
	})
}

// DeleteSkill 删除指定技能。
func (a *API) DeleteSkill(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的技能ID")
		return
	}

	if err := a.skills.Delete(id); err != nil {
		handleSkillError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "技能已删除"})
}

func (r skillRequest) toInput() service.SkillInput {
	return service.SkillInput{
		Name:        r.Name,
		Category:    r.Category,
		Level:       r.Level,
		Icon:        r.Icon,
		ImageURL:    r.ImageURL,
		ImageKey:    r.ImageKey,
		Description: r.Description,
		SortOrder:   r.SortOrder,
		Visible:     r.Visible,
	}
}

func adminSkillPayload(skill db.Skill) gin.H {
	payload := publicSkillPayload(skill)
	payload["imageKey"] = skill.ImageKey
	payload["isVisible"] = skill.Visible
	return payload
}

// publicSkillPayload 为对外投影。level 同时以 proficiency 暴露，兼容旧前端。
func publicSkillPayload(skill db.Skill) gin.H {
	return gin.H{
		"id":          skill.ID,
		"name":        skill.Name,
		"category":    skill.Category,
		"level":       skill.Level,
		"proficiency": skill.Level,
		"icon":        skill.Icon,
		"imageUrl":    skill.ImageURL,
		"description": skill.Description,
		"order":       skill.SortOrder,
	}
}

func handleSkillError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSkillNotFound):
		respondError(c, http.StatusNotFound, "技能不存在")
	case errors.Is(err, service.ErrSkillInvalidInput):
		respondValidationError(c, "请检查技能字段", extractMissingFields(err))
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
