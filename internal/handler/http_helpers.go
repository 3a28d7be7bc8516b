package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondValidationError 返回 422 与机器可读的缺失字段清单。
func respondValidationError(c *gin.Context, message string, fields []string) {
	payload := gin.H{"error": message}
	if len(fields) > 0 {
		payload["fields"] = fields
	}
	c.JSON(http.StatusUnprocessableEntity, payload)
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parseLimitQuery 解析 limit 查询参数，非法或缺失时返回 0（不限制）。
func parseLimitQuery(c *gin.Context) int {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// parseBoolQuery 解析布尔查询参数，缺失或非法时返回 nil。
func parseBoolQuery(c *gin.Context, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

// extractMissingFields 从校验错误信息里还原字段清单，供前端逐项标红。
func extractMissingFields(err error) []string {
	msg := err.Error()
	idx := strings.Index(msg, "missing ")
	if idx < 0 {
		return nil
	}
	rest := msg[idx+len("missing "):]
	parts := strings.Split(rest, ", ")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			fields = append(fields, trimmed)
		}
	}
	return fields
}
