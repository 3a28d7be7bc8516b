package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const sessionKeyAdmin = "admin"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login 校验静态管理员凭证并签发会话 Cookie。
// 配置了 PasswordHash 时使用 bcrypt，否则退化为常量时间比较。
func (a *API) Login(c *gin.Context) {
	var payload loginRequest
	if !bindJSON(c, &payload, "请输入用户名和密码") {
		return
	}

	if !a.checkCredentials(payload.Username, payload.Password) {
		respondError(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyAdmin, true)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "登录成功"})
}

// Logout 清除会话。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}

// Session 返回当前会话状态，供前端判断是否已登录。
func (a *API) Session(c *gin.Context) {
	session := sessions.Default(c)
	loggedIn, _ := session.Get(sessionKeyAdmin).(bool)
	c.JSON(http.StatusOK, gin.H{"authenticated": loggedIn})
}

// DashboardStats 返回后台面板的聚合统计。
func (a *API) DashboardStats(c *gin.Context) {
	stats, err := a.dashboard.Stats()
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// AuthRequired 是后台接口的认证中间件，未登录时返回 401，不带细节。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		loggedIn, _ := session.Get(sessionKeyAdmin).(bool)
		if !loggedIn {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func (a *API) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(a.admin.Username)) == 1

	var passOK bool
	if a.admin.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.admin.Password)) == 1
	}

	return userOK && passOK
}
