package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/internal/db"
	"github.com/devfolio/internal/service"
)

type certificateRequest struct {
	Title         *string                `json:"title"`
	Issuer        *string                `json:"issuer"`
	IssueDate     *string                `json:"issueDate"`
	ExpiryDate    service.OptionalString `json:"expiryDate"`
	CredentialID  *string                `json:"credentialId"`
	CredentialURL *string                `json:"credentialUrl"`
	Skills        []string               `json:"skills"`
	Verified      *bool                  `json:"isVerified"`
	SortOrder     *int                   `json:"order"`
	Visible       *bool                  `json:"isVisible"`
}

// ListAdminCertificates 返回后台管理用的证书列表（含隐藏条目）。
func (a *API) ListAdminCertificates(c *gin.Context) {
	certificates, err := a.certificates.List(true, 0)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "获取证书列表失败")
		return
	}

	items := make([]gin.H, 0, len(certificates))
	for _, item := range certificates {
		items = append(items, adminCertificatePayload(item))
	}
	c.JSON(http.StatusOK, gin.H{"certificates": items})
}

// GetAdminCertificate 返回单个证书。
func (a *API) GetAdminCertificate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的证书ID")
		return
	}

	item, err := a.certificates.Get(id)
	if err != nil {
		handleCertificateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"certificate": adminCertificatePayload(*item)})
}

// CreateCertificate 创建新证书。
func (a *API) CreateCertificate(c *gin.Context) {
	var payload certificateRequest
	if !bindJSON(c, &payload, "请填写完整的证书信息") {
		return
	}

	item, err := a.certificates.Create(payload.toInput())
	if err != nil {
		handleCertificateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "已新增证书",
		"certificate": adminCertificatePayload(*item),
	})
}

// UpdateCertificate 部分更新证书。
func (a *API) UpdateCertificate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的证书ID")
		return
	}

	var payload certificateRequest
	if !bindJSON(c, &payload, "请填写完整的证书信息") {
		return
	}

	item, err := a.certificates.Update(id, payload.toInput())
	if err != nil {
		handleCertificateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "证书已更新",
		"certificate": adminCertificatePayload(*item),
	})
}

// DeleteCertificate 删除指定证书。
func (a *API) DeleteCertificate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的证书ID")
		return
	}

	if err := a.certificates.Delete(id); err != nil {
		handleCertificateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "证书已删除"})
}

func (r certificateRequest) toInput() service.CertificateInput {
	return service.CertificateInput{
		Title:         r.Title,
		Issuer:        r.Issuer,
		IssueDate:     r.IssueDate,
		ExpiryDate:    r.ExpiryDate,
		CredentialID:  r.CredentialID,
		CredentialURL: r.CredentialURL,
		Skills:        r.Skills,
		Verified:      r.Verified,
		SortOrder:     r.SortOrder,
		Visible:       r.Visible,
	}
}

func adminCertificatePayload(item db.Certificate) gin.H {
	payload := publicCertificatePayload(item)
	payload["isVisible"] = item.Visible
	return payload
}

func publicCertificatePayload(item db.Certificate) gin.H {
	skills := []string(item.Skills)
	if skills == nil {
		skills = []string{}
	}
	return gin.H{
		"id":            item.ID,
		"title":         item.Title,
		"issuer":        item.Issuer,
		"issueDate":     item.IssueDate,
		"expiryDate":    item.ExpiryDate,
		"credentialId":  item.CredentialID,
		"credentialUrl": item.CredentialURL,
		"skills":        skills,
		"isVerified":    item.Verified,
		"order":         item.SortOrder,
	}
}

func handleCertificateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCertificateNotFound):
		respondError(c, http.StatusNotFound, "证书不存在")
	case errors.Is(err, service.ErrCertificateInvalidInput):
		respondValidationError(c, "请检查必填项", extractMissingFields(err))
	default:
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
