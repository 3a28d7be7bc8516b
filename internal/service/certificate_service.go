package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/devfolio/internal/db"
)

var (
	// ErrCertificateNotFound 在指定证书不存在时返回
	ErrCertificateNotFound = errors.New("certificate not found")
	// ErrCertificateInvalidInput 在必填字段缺失时返回
	ErrCertificateInvalidInput = errors.New("invalid certificate input")
)

// CertificateService 负责证书条目的增删改查。
type CertificateService struct {
	db *gorm.DB
}

// NewCertificateService 构造 CertificateService。
func NewCertificateService(gdb *gorm.DB) *CertificateService {
	return &CertificateService{db: gdb}
}

// CertificateInput 描述创建或更新证书时可设置的字段。
// ExpiryDate 使用 OptionalString 支持显式置空（长期有效）。
type CertificateInput struct {
	Title         *string
	Issuer        *string
	IssueDate     *string
	ExpiryDate    OptionalString
	CredentialID  *string
	CredentialURL *string
	Skills        []string
	Verified      *bool
	SortOrder     *int
	Visible       *bool
}

// List 返回证书集合，排序为 sort_order ASC, issue_date DESC, id ASC。
func (s *CertificateService) List(includeHidden bool, limit int) ([]db.Certificate, error) {
	query := s.db.Model(&db.Certificate{})
	if !includeHidden {
		query = query.Where("visible = ?", true)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []db.Certificate
	if err := query.Order("sort_order ASC, issue_date DESC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return items, nil
}

// Get 根据主键获取证书。
func (s *CertificateService) Get(id uint) (*db.Certificate, error) {
	var item db.Certificate
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("get certificate: %w", err)
	}
	return &item, nil
}

// Create 新建证书，Title 与 Issuer 为必填。
func (s *CertificateService) Create(input CertificateInput) (*db.Certificate, error) {
	missing := missingFields(
		requiredField{"title", input.Title},
		requiredField{"issuer", input.Issuer},
	)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrCertificateInvalidInput, strings.Join(missing, ", "))
	}

	item := db.Certificate{
		Title:   strings.TrimSpace(*input.Title),
		Issuer:  strings.TrimSpace(*input.Issuer),
		Visible: true,
	}
	applyCertificateInput(&item, input)

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	return &item, nil
}

// Update 部分更新证书，未出现的字段保持原值。
func (s *CertificateService) Update(id uint, input CertificateInput) (*db.Certificate, error) {
	var item db.Certificate
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateNotFound
		}
		return nil, fmt.Errorf("find certificate: %w", err)
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: missing title", ErrCertificateInvalidInput)
		}
		item.Title = trimmed
	}
	if input.Issuer != nil {
		trimmed := strings.TrimSpace(*input.Issuer)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: missing issuer", ErrCertificateInvalidInput)
		}
		item.Issuer = trimmed
	}
	applyCertificateInput(&item, input)

	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update certificate: %w", err)
	}
	return &item, nil
}

// Delete 删除指定证书，不存在时返回 ErrCertificateNotFound。
func (s *CertificateService) Delete(id uint) error {
	result := s.db.Delete(&db.Certificate{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete certificate: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCertificateNotFound
	}
	return nil
}

func applyCertificateInput(item *db.Certificate, input CertificateInput) {
	if input.IssueDate != nil {
		item.IssueDate = strings.TrimSpace(*input.IssueDate)
	}
	if input.ExpiryDate.Set {
		item.ExpiryDate = input.ExpiryDate.Value
	}
	if input.CredentialID != nil {
		item.CredentialID = strings.TrimSpace(*input.CredentialID)
	}
	if input.CredentialURL != nil {
		item.CredentialURL = strings.TrimSpace(*input.CredentialURL)
	}
	if input.Skills != nil {
		item.Skills = datatypes.NewJSONSlice(input.Skills)
	}
	if input.Verified != nil {
		item.Verified = *input.Verified
	}
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	if input.Visible != nil {
		item.Visible = *input.Visible
	}
}
