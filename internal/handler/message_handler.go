package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type messageStatusRequest struct {
	Status string `json:"status"`
}

type messageArchiveRequest struct {
	Archived bool `json:"archived"`
}

// SubmitContact 处理公开的联系表单提交。
// 通知邮件失败不影响留言落库与响应。
func (a *API) SubmitContact(c *gin.Context) {
	var payload contactRequest
	if !bindJSON(c, &payload, "请填写完整的留言信息") {
		return
	}

	message, err := a.messages.Create(service.MessageInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Body:    payload.Body,
	})
	if err != nil {
		handleMessageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "留言已提交",
		"id":      message.ID,
	})
}

// ListAdminMessages 返回后台留言列表，默认排除已归档条目。
func (a *API) ListAdminMessages(c *gin.Context) {
	includeArchived, _ := strconv.ParseBool(c.DefaultQuery("archived", "false"))

	messages, err := a.messages.List(service.MessageFilter{
		Status:          c.Query("status"),
		IncludeArchived: includeArchived,
	})
	if err != nil {
		handleMessageError(c, err)
		return
	}

	items := make([]gin.H, 0, len(messages))
	for _, message := range messages {
		items = append(items, messagePayload(message))
	}
	c.JSON(http.StatusOK, gin.H{"messages": items})
}

// UpdateMessageStatus 修改留言状态（UNREAD/READ/REPLIED）。
func (a *API) UpdateMessageStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	var payload messageStatusRequest
	if !bindJSON(c, &payload, "请提供状态值") {
		return
	}

	message, err := a.messages.UpdateStatus(id, payload.Status)
	if err != nil {
		handleMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "状态已更新",
		"item":    messagePayload(*message),
	})
}

// ArchiveMessage 设置或取消归档。
func (a *API) ArchiveMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	var payload messageArchiveRequest
	if !bindJSON(c, &payload, "请提供归档标记") {
		return
	}

	message, err := a.messages.SetArchived(id, payload.Archived)
	if err != nil {
		handleMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "归档状态已更新",
		"item":    messagePayload(*message),
	})
}

// DeleteMessage 删除指定留言。
func (a *API) DeleteMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	if err := a.messages.Delete(id); err != nil {
		handleMessageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "留言已删除"})
}

func messagePayload(message db.Message) gin.H {
	return gin.H{
		"id":         message.ID,
		"name":       message.Name,
		"email":      message.Email,
		"subject":    message.Subject,
		"body":       message.Body,
		"status":     message.Status,
		"isArchived": message.Archived,
		"createdAt":  message.CreatedAt,
	}
}

func handleMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound):
		respondError(c, http.StatusNotFound, "留言不存在")
	case errors.Is(err, service.ErrMessageInvalidInput):
		respondValidationError(c, "请检查必填项", extractMissingFields(err))
	case errors.Is(err, service.ErrMessageInvalidStatus):
		respondError(c, http.StatusBadRequest, "状态值不合法")
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
