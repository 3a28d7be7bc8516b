package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadImage 处理图片上传请求，对象流式写入对象存储。
// 返回公开 URL 与对象键，后者仅供后台后续删除使用。
func (a *API) UploadImage(c *gin.Context) {
	if a.uploads == nil {
		respondError(c, http.StatusServiceUnavailable, "对象存储未配置")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "只允许上传图片文件")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "读取上传文件失败")
		return
	}
	defer src.Close()

	// 生成唯一对象键，按日期归档
	ext := filepath.Ext(file.Filename)
	objectKey := fmt.Sprintf("uploads/%s/%s%s", time.Now().Format("20060102"), uuid.NewString(), ext)

	result, err := a.uploads.Upload(c.Request.Context(), objectKey, src, file.Size, contentType)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "保存文件失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "上传成功",
		"data": gin.H{
			"url":  result.URL,
			"key":  result.Key,
			"size": result.Size,
		},
	})
}
