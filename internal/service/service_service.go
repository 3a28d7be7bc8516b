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
	// ErrServiceNotFound 在指定服务项不存在时返回
	ErrServiceNotFound = errors.New("service not found")
	// ErrServiceInvalidInput 在必填字段缺失时返回
	ErrServiceInvalidInput = errors.New("invalid service input")
)

// ServiceService 负责对外服务项的增删改查。
type ServiceService struct {
	db *gorm.DB
}

// NewServiceService 构造 ServiceService。
func NewServiceService(gdb *gorm.DB) *ServiceService {
	return &ServiceService{db: gdb}
}

// ServiceInput 描述创建或更新服务项时可设置的字段。
type ServiceInput struct {
	Title       *string
	Description *string
	Features    []string
	Category    *string
	Featured    *bool
	Icon        *string
	ImageURL    *string
	ImageKey    *string
	SortOrder   *int
	Visible     *bool
}

// List 返回服务项集合，排序为 featured DESC, sort_order ASC, id ASC。
func (s *ServiceService) List(includeHidden bool, filter ProjectFilter) ([]db.Service, error) {
	query := s.db.Model(&db.Service{})
	if !includeHidden {
		query = query.Where("visible = ?", true)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if strings.TrimSpace(filter.Category) != "" {
		query = query.Where("category = ?", strings.TrimSpace(filter.Category))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var items []db.Service
	if err := query.Order("featured DESC, sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return items, nil
}

// Get 根据主键获取服务项。
func (s *ServiceService) Get(id uint) (*db.Service, error) {
	var item db.Service
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &item, nil
}

// Create 新建服务项，Title 与 Description 为必填。
func (s *ServiceService) Create(input ServiceInput) (*db.Service, error) {
	missing := missingFields(
		requiredField{"title", input.Title},
		requiredField{"description", input.Description},
	)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrServiceInvalidInput, strings.Join(missing, ", "))
	}

	item := db.Service{
		Title:       strings.TrimSpace(*input.Title),
		Description: *input.Description,
		Visible:     true,
	}
	applyServiceInput(&item, input)

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return &item, nil
}

// Update 部分更新服务项，未出现的字段保持原值。
func (s *ServiceService) Update(id uint, input ServiceInput) (*db.Service, error) {
	var item db.Service
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: missing title", ErrServiceInvalidInput)
		}
		item.Title = trimmed
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	applyServiceInput(&item, input)

	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return &item, nil
}

// Delete 删除指定服务项，不存在时返回 ErrServiceNotFound。
func (s *ServiceService) Delete(id uint) error {
	result := s.db.Delete(&db.Service{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func applyServiceInput(item *db.Service, input ServiceInput) {
	if input.Features != nil {
		item.Features = datatypes.NewJSONSlice(input.Features)
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.Featured != nil {
		item.Featured = *input.Featured
	}
	if input.Icon != nil {
		item.Icon = strings.TrimSpace(*input.Icon)
	}
	if input.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.ImageKey != nil {
		item.ImageKey = strings.TrimSpace(*input.ImageKey)
	}
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	if input.Visible != nil {
		item.Visible = *input.Visible
	}
}
