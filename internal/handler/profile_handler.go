package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
)

type profileRequest struct {
	FullName  *string        `json:"fullName"`
	Title     *string        `json:"title"`
	Bio       *string        `json:"bio"`
	AvatarURL *string        `json:"avatar"`
	AvatarKey *string        `json:"avatarKey"`
	Email     *string        `json:"email"`
	Phone     *string        `json:"phone"`
	Location  *string        `json:"location"`
	Website   *string        `json:"website"`
	Socials   map[string]any `json:"socials"`
	Visible   *bool          `json:"isVisible"`
}

// GetAdminProfile 返回后台编辑用的完整档案，未创建时返回 404。
func (a *API) GetAdminProfile(c *gin.Context) {
	profile, err := a.profiles.Get()
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			respondError(c, http.StatusNotFound, "档案尚未创建")
			return
		}
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取档案失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": adminProfilePayload(*profile)})
}

// SaveProfile 创建或合并更新档案。
func (a *API) SaveProfile(c *gin.Context) {
	var payload profileRequest
	if !bindJSON(c, &payload, "请填写正确的档案信息") {
		return
	}

	profile, err := a.profiles.Save(payload.toInput())
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "保存档案失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "档案已保存",
		"profile": adminProfilePayload(*profile),
	})
}

// GetPublicProfile 返回公开档案。
// 档案缺失或读取失败时回退到内置档案并保持 200，可用性优先于正确性。
func (a *API) GetPublicProfile(c *gin.Context) {
	profile, err := a.profiles.GetPublic()
	if err != nil || !profile.Visible {
		if err != nil && !errors.Is(err, service.ErrProfileNotFound) {
			c.Error(err)
		}
		c.JSON(http.StatusOK, gin.H{"profile": fallbackProfilePayload()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": publicProfilePayload(*profile)})
}

func (r profileRequest) toInput() service.ProfileInput {
	return service.ProfileInput{
		FullName:  r.FullName,
		Title:     r.Title,
		Bio:       r.Bio,
		AvatarURL: r.AvatarURL,
		AvatarKey: r.AvatarKey,
		Email:     r.Email,
		Phone:     r.Phone,
		Location:  r.Location,
		Website:   r.Website,
		Socials:   r.Socials,
		Visible:   r.Visible,
	}
}

// adminProfilePayload 含内部字段（存储路径），仅后台可见。
func adminProfilePayload(profile db.Profile) gin.H {
	payload := publicProfilePayload(profile)
	payload["avatarKey"] = profile.AvatarKey
	payload["isVisible"] = profile.Visible
	return payload
}

// publicProfilePayload 为对外投影，不含存储路径等内部字段。
func publicProfilePayload(profile db.Profile) gin.H {
	return gin.H{
		"id":       profile.ID,
		"fullName": profile.FullName,
		"title":    profile.Title,
		"bio":      profile.Bio,
		"bioHtml":  renderMarkdown(profile.Bio),
		"avatar":   profile.AvatarURL,
		"email":    profile.Email,
		"phone":    profile.Phone,
		"location": profile.Location,
		"website":  profile.Website,
		"socials":  profile.Socials,
	}
}

// fallbackProfilePayload 是档案缺失时的兜底内容，公开接口永不报错。
func fallbackProfilePayload() gin.H {
	return gin.H{
		"id":       0,
		"fullName": "Developer",
		"title":    "Software Engineer",
		"bio":      "",
		"bioHtml":  "",
		"avatar":   "",
		"email":    "",
		"phone":    "",
		"location": "",
		"website":  "",
		"socials":  gin.H{},
	}
}
